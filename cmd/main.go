package main

import "bewley/cmd/cli"

func main() {
	cli.Execute()
}
