package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotrig/cmd/dotrig"
	"github.com/arthur-debert/dotrig/internal/version"
)

func main() {
	rootCmd := dotrig.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DOTRIG",
		Section: "1",
		Source:  "dotrig " + version.Version,
		Manual:  "dotrig manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
