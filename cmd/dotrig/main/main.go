package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/dotrig/cmd/dotrig"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := dotrig.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		dotrig.ReportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
