package main

import "github.com/oshokin/facetrack/cmd/facetrack-emulator/cmd"

func main() {
	cmd.Execute()
}
