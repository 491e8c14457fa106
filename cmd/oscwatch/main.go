package main

import "github.com/chabad360/oscwatch/internal/cli"

func main() {
	cli.Execute()
}
