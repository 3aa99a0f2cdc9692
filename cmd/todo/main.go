package main

import (
	"fmt"
	"os"

	"todo-engine/internal/cli"
)

func main() {
	root := cli.NewRootCommand(bootstrap)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
