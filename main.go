package main

import "github.com/hostpulse/hostpulse/cmd"

func main() {
	cmd.Execute()
}
