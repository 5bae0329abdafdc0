// Package main provides the entry point for the lolfetch CLI.
package main

import (
	"github.com/colthorp/lolfetch-go/internal/cli"
)

func main() {
	cli.Execute()
}
