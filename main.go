package main

import "github.com/clapstudio/speechsplit/internal/cli"

func main() {
	cli.Main()
}
