package main

import "sitelint/cmd/sitelint/cmd"

func main() {
	cmd.Execute()
}
