// Package main is the entry point for the wintools command-line tool.
package main

import (
	"os"

	"github.com/Norgate-AV/wintools/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
