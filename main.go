package main

import "symcc/cmd"

func main() {
	cmd.Execute()
}
