package main

import "github.com/maximbilan/sidediff/cmd"

func main() {
	cmd.Execute()
}
