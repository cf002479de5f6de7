// Package main provides the inspect2compose binary.
//
// inspect2compose turns the JSON printed by `docker inspect <container>` into a
// compose file with one service and its networks declared external.
//
// Usage:
//
//	inspect2compose -i inspect.json -o docker-compose.yml
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/artpar/inspect2compose/internal/config"
	"github.com/artpar/inspect2compose/internal/shell/converter"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitConfigError = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("inspect2compose", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var input, output string
	fs.StringVar(&input, "input", "", "Sets the input JSON file from 'docker inspect'")
	fs.StringVar(&input, "i", "", "Shorthand for --input")
	fs.StringVar(&output, "output", "", "Sets the output YAML file for Docker Compose")
	fs.StringVar(&output, "o", "", "Shorthand for --output")
	configPath := fs.String("config", "", "Path to config file")
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: inspect2compose -i <FILE> -o <FILE>\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	// Handle version flag
	if *showVersion {
		fmt.Fprintf(stdout, "inspect2compose %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	if err := checkRequired(fs, input, output); err != nil {
		fmt.Fprintf(stderr, "error: %v\n\n", err)
		fs.Usage()
		return ExitUsage
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}
	opts, err := cfg.Compose.RenderOptions()
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}

	logger := config.SetupLogger(cfg, stderr)
	for _, warning := range cfg.Warnings {
		logger.Warn("configuration warning", "detail", warning)
	}
	logger.Debug("starting inspect2compose",
		"version", Version,
		"config", *configPath,
	)

	conv := converter.New(logger, stdout, opts)
	if err := conv.Convert(input, output); err != nil {
		var stageErr *converter.StageError
		if errors.As(err, &stageErr) {
			logger.Error("conversion failed",
				"error", stageErr.Err,
				"operation", stageErr.Stage,
			)
		} else {
			logger.Error("conversion failed", "error", err)
		}
		return ExitFailure
	}

	return ExitSuccess
}

// checkRequired reports the first required flag left unset, and rejects
// stray positional arguments.
func checkRequired(fs *flag.FlagSet, input, output string) error {
	if input == "" {
		return errors.New("the following required argument was not provided: --input <FILE>")
	}
	if output == "" {
		return errors.New("the following required argument was not provided: --output <FILE>")
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return nil
}
