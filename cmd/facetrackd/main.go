package main

import "github.com/oshokin/facetrack/cmd/facetrackd/cmd"

func main() {
	cmd.Execute()
}
