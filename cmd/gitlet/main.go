// Command gitlet is the CLI front-end described in spec.md §6.
package main

import (
	"os"

	"github.com/nullstate/gitlet/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
