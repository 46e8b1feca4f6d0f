package main

import (
	"fmt"
	"os"

	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
