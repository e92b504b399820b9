package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shenjy24/quartzcron/internal/cli"
)

func main() {
	// Initialize structured logger; the root command replaces it once
	// configuration is loaded.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
