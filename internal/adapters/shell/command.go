// Package shell turns command lines into task jobs.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/jig/internal/core/domain"
	"go.trai.ch/jig/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner builds opaque job actions that execute external commands. The build
// engine never looks inside them; it only awaits their completion.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new command Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Job returns a job that runs argv with the inherited environment, streaming
// stdout and stderr line-wise into the logger. When the context carries a
// telemetry vertex, stdout is mirrored into it. A non-zero exit carries the
// exit code as error metadata.
func (r *Runner) Job(argv []string) domain.JobFunc {
	return func(ctx context.Context) error {
		if len(argv) == 0 {
			return nil
		}

		name := argv[0]
		cmd := exec.CommandContext(ctx, name, argv[1:]...) //nolint:gosec // user provided command
		cmd.Env = os.Environ()
		cmd.Stdout = &logWriter{logger: r.logger, level: "info"}
		cmd.Stderr = &logWriter{logger: r.logger, level: "error"}
		if vertex, ok := ports.VertexFromContext(ctx); ok {
			cmd.Stdout = io.MultiWriter(cmd.Stdout, vertex.Stdout())
		}

		if err := cmd.Run(); err != nil {
			exitCode := -1
			if exitErr, ok := err.(*exec.ExitError); ok {
				exitCode = exitErr.ExitCode()
			}
			return zerr.With(zerr.With(zerr.Wrap(err, "command failed"),
				"command", strings.Join(argv, " ")),
				"exit_code", exitCode)
		}
		return nil
	}
}

type logWriter struct {
	logger ports.Logger
	level  string
}

// Write splits the chunk into lines and forwards each to the logger. Writes
// may arrive with partial lines; command output is line-oriented enough in
// practice that no buffering is done.
func (w *logWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")
	for _, line := range strings.Split(msg, "\n") {
		if line == "" {
			continue
		}
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}
