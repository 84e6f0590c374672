package main

import "apt-archives/internal/cli"

func main() {
	cli.Execute()
}
