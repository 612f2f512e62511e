package main

import "github.com/himanishpuri/beatmapdoc/internal/cli"

func main() {
	cli.Execute()
}
