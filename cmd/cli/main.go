package main

import (
	"fmt"
	"os"

	"github.com/de-tools/roi-atlas/pkg/terminal/commands"
)

func main() {
	root := commands.NewRootCmd(os.Stdout)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
