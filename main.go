package main

import (
	"os"

	"github.com/joules19/chowmate-web-sub002/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
