// Command rssminer discovers RSS and Atom feeds on web pages and writes them
// to an OPML subscription list.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/tesso57/rssminer/internal/infrastructure/config"
	"github.com/tesso57/rssminer/internal/infrastructure/logging"
	"github.com/tesso57/rssminer/internal/presentation/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rssminer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	s, err := config.Load(os.Args[1:],
		kong.Name("rssminer"),
		kong.Description("Discover RSS and Atom feeds on web pages and export them as OPML."),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Config{Level: s.Log.Level, Format: s.Log.Format}, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewApp(s, os.Stdout, log).Run(ctx, s)
}
