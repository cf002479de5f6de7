// Package main provides the inspect-snapshot binary.
//
// inspect-snapshot asks the Docker daemon for one container's inspection record
// and saves it in the same shape `docker inspect` prints, ready to be fed to
// inspect2compose.
//
// Usage:
//
//	inspect-snapshot -c web -o inspect.json
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/artpar/inspect2compose/internal/config"
	"github.com/artpar/inspect2compose/internal/shell/docker"
	"github.com/artpar/inspect2compose/internal/shell/fileio"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitConfigError = 3
	ExitDockerError = 4
)

// inspectTimeout bounds the whole daemon round trip.
const inspectTimeout = 30 * time.Second

// newInspector is replaced in tests.
var newInspector = func(host string) (docker.Inspector, func() error, error) {
	cli, err := docker.NewClient(host)
	if err != nil {
		return nil, nil, err
	}
	return cli, cli.Close, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("inspect-snapshot", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var container, output string
	fs.StringVar(&container, "container", "", "Name or ID of the container to inspect")
	fs.StringVar(&container, "c", "", "Shorthand for --container")
	fs.StringVar(&output, "output", "", "Path of the inspection JSON file to write")
	fs.StringVar(&output, "o", "", "Shorthand for --output")
	configPath := fs.String("config", "", "Path to config file")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: inspect-snapshot -c <CONTAINER> -o <FILE>\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}
	if container == "" || output == "" || fs.NArg() > 0 {
		fmt.Fprintf(stderr, "error: both --container and --output are required\n\n")
		fs.Usage()
		return ExitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}
	logger := config.SetupLogger(cfg, stderr)
	for _, warning := range cfg.Warnings {
		logger.Warn("configuration warning", "detail", warning)
	}

	ctx, cancel := context.WithTimeout(context.Background(), inspectTimeout)
	defer cancel()

	return snapshot(ctx, logger, cfg.Docker.Host, container, output)
}

func snapshot(ctx context.Context, logger *slog.Logger, host, container, output string) int {
	inspector, closeFn, err := newInspector(host)
	if err != nil {
		logger.Error("failed to create docker client", "error", err, "host", host)
		return ExitDockerError
	}
	defer closeFn()

	doc, err := docker.Snapshot(ctx, inspector, container)
	if err != nil {
		logger.Error("failed to inspect container",
			"error", err,
			"container", container,
		)
		return ExitDockerError
	}

	if err := fileio.WriteOutput(output, doc); err != nil {
		logger.Error("failed to write snapshot", "error", err, "output", output)
		return ExitFailure
	}

	logger.Info("snapshot written",
		"container", container,
		"output", output,
		"bytes", len(doc),
	)
	return ExitSuccess
}
