// Package pipeline chains the recovery steps: read the code file, correct
// and strip the parity bits, assemble bytes, decipher, re-encipher, then
// compress and decompress with Huffman coding.
//
// Stages run in a fixed order.  A failing stage is recorded and the run
// continues; a stage whose inputs were never produced is skipped.
package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Options configures a Runner.
type Options struct {
	// Input is the path of the code file.
	Input string

	// Key deciphers the assembled text.
	Key string

	// Strict rejects streams with a partial 7-bit group.
	Strict bool

	// Workers > 1 corrects groups concurrently.
	Workers int

	// Archive, if non-empty, is where the compress stage writes its output.
	Archive string

	// Rand draws the re-encipher key.  Defaults to a clock-seeded source.
	Rand *rand.Rand

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// ReadFile and WriteFile default to os.ReadFile and os.WriteFile.
	ReadFile  func(path string) ([]byte, error)
	WriteFile func(path string, data []byte) error
}

// Runner executes the pipeline.
type Runner struct {
	opts    Options
	logger  *zap.Logger
	printer *message.Printer
}

// New returns a Runner for the given options.
func New(opts Options) *Runner {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ReadFile == nil {
		opts.ReadFile = os.ReadFile
	}
	if opts.WriteFile == nil {
		opts.WriteFile = func(path string, data []byte) error {
			return os.WriteFile(path, data, 0644)
		}
	}
	return &Runner{
		opts:    opts,
		logger:  opts.Logger,
		printer: message.NewPrinter(language.English),
	}
}

// Run executes every stage and returns the report.  It never returns early:
// cancellation of ctx marks the remaining stages as skipped.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{
		RunID: uuid.New().String(),
		State: newState(),
	}
	logger := r.logger.With(zap.String("run_id", report.RunID))
	logger.Info("Pipeline started", zap.String("input", r.opts.Input))

	for _, st := range r.stages() {
		result := StageResult{Name: st.Name}

		if err := ctx.Err(); err != nil {
			result.Status = StatusSkipped
			result.Summary = fmt.Sprintf("cancelled: %v", err)
		} else if a, missing := report.State.missing(st.Needs); missing {
			result.Status = StatusSkipped
			result.Summary = fmt.Sprintf("missing input %q", a)
		} else {
			start := time.Now()
			summary, err := runStage(ctx, st, report.State)
			result.Duration = time.Since(start)
			result.Summary = summary
			if err != nil {
				result.Status = StatusFailed
				result.Err = fmt.Errorf("error while %s: %w", st.Description, err)
			} else {
				result.Status = StatusOK
			}
		}

		fields := []zap.Field{
			zap.String("stage", st.Name),
			zap.Stringer("status", result.Status),
			zap.Duration("duration", result.Duration),
			zap.String("summary", result.Summary),
		}
		switch result.Status {
		case StatusFailed:
			logger.Warn("Stage failed", append(fields, zap.Error(result.Err))...)
		case StatusSkipped:
			logger.Info("Stage skipped", fields...)
		default:
			logger.Debug("Stage finished", fields...)
		}

		report.Stages = append(report.Stages, result)
	}

	logger.Info("Pipeline finished", zap.Int("errors", len(report.Errors())))
	return report
}

// runStage turns a panic inside the stage into an error.
func runStage(ctx context.Context, st Stage, s *State) (summary string, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic: %v", v)
		}
	}()
	return st.Run(ctx, s)
}
