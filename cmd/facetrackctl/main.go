package main

import "github.com/oshokin/facetrack/cmd/facetrackctl/cmd"

func main() {
	cmd.Execute()
}
