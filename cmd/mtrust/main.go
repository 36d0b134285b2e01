package main

import "github.com/modeltrust/mtrust/pkg/cli"

func main() {
	cli.Execute()
}
