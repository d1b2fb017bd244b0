package main

import "github.com/aditya22034/CodeWhisper/cmd"

func main() {
	cmd.Execute()
}
