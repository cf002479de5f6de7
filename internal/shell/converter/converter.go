// Package converter runs the inspection-record-to-compose pipeline:
// read input, parse, extract, render, echo, write output.
package converter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/artpar/inspect2compose/internal/core/compose"
	"github.com/artpar/inspect2compose/internal/core/inspect"
	"github.com/artpar/inspect2compose/internal/shell/fileio"
)

// =============================================================================
// Stages
// =============================================================================

// Pipeline stage names, reported in StageError.
const (
	StageRead    = "read input"
	StageParse   = "parse input"
	StageExtract = "extract fields"
	StageRender  = "render compose"
	StageEcho    = "echo output"
	StageWrite   = "write output"
)

// StageError names the pipeline stage that failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// =============================================================================
// Converter
// =============================================================================

// Converter turns one inspection file into one compose file.
type Converter struct {
	logger *slog.Logger
	echo   io.Writer
	opts   compose.Options
}

// New creates a Converter. The rendered document is echoed to echo before it
// is written to the output file.
func New(logger *slog.Logger, echo io.Writer, opts compose.Options) *Converter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{
		logger: logger,
		echo:   echo,
		opts:   opts,
	}
}

// Convert reads inputPath, renders the compose document and writes it to
// outputPath. The output file is not touched unless every earlier stage
// succeeded.
func (c *Converter) Convert(inputPath, outputPath string) error {
	c.logger.Info("converting inspection record",
		"input", inputPath,
		"output", outputPath,
	)

	data, err := fileio.ReadInput(inputPath)
	if err != nil {
		return &StageError{Stage: StageRead, Err: err}
	}

	doc, err := c.Transform(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(c.echo, doc); err != nil {
		return &StageError{Stage: StageEcho, Err: err}
	}

	if err := fileio.WriteOutput(outputPath, []byte(doc)); err != nil {
		return &StageError{Stage: StageWrite, Err: err}
	}

	c.logger.Info("compose file written",
		"output", outputPath,
		"bytes", len(doc),
	)
	return nil
}

// Transform converts raw inspection JSON into compose YAML without any I/O.
func (c *Converter) Transform(data []byte) (string, error) {
	record, err := inspect.Load(data)
	if err != nil {
		return "", &StageError{Stage: StageParse, Err: err}
	}

	spec, err := inspect.Extract(record)
	if err != nil {
		return "", &StageError{Stage: StageExtract, Err: err}
	}

	c.logger.Debug("extracted service",
		"service", spec.Name,
		"image", spec.Image,
		"restart", spec.RestartPolicy,
		"networks", len(spec.Networks),
		"ports", len(spec.Ports),
		"volumes", len(spec.Volumes),
		"environment", len(spec.Environment),
	)

	for _, warning := range inspect.LintPorts(spec.Ports) {
		c.logger.Warn("unusual port key", "service", spec.Name, "detail", warning)
	}

	doc, err := compose.Render(spec, c.opts)
	if err != nil {
		return "", &StageError{Stage: StageRender, Err: err}
	}
	return doc, nil
}
