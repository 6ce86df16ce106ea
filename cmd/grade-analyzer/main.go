package main

import (
	"os"

	"github.com/rcliao/grade-analyzer/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
