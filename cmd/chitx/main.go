package main

import "github.com/rustyeddy/chitx/internal/cli"

func main() {
	cli.Execute()
}
