package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/vk/fmlgen/internal/cli"
)

// main is the entrypoint for the fmlgen application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		code := 1
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
		}
		color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	return cli.Run(context.Background(), args, outW)
}
