// Package main provides the rulelint command line interface.
package main

import "github.com/rulelint-dev/rulelint/internal/cli"

func main() {
	cli.Execute()
}
