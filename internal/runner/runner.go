// internal/runner/runner.go
// Package runner executes per-key benchmark programs over the input
// documents of a results root.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"github.com/mwiater/benjmark/internal/logging"
	"github.com/mwiater/benjmark/internal/results"
)

const defaultTimeout = 10 * time.Minute

// ErrRunFailed is returned when at least one program run failed.
var ErrRunFailed = errors.New("benchmark run failed")

var execCommand = exec.CommandContext

// Config describes one run.
type Config struct {
	Root string
	// Commands maps a dataset key to the program and leading arguments that
	// benchmark it. The input and output paths are appended.
	Commands map[string][]string
	// Keys restricts and orders the keys to run; empty means all commands
	// in sorted order.
	Keys    []string
	Timeout time.Duration
}

// Failure records one failed program run.
type Failure struct {
	Key   string
	Input string
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Key, f.Input, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Summary lists what a run produced.
type Summary struct {
	Runs     int
	Outputs  []string
	Failures []Failure
}

// Run benchmarks every key against every input document, one program at a
// time so measurements do not contend for the machine. A failed run is
// recorded and the remaining runs continue.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	keys, err := runKeys(cfg)
	if err != nil {
		return Summary{}, err
	}
	inputs, err := results.LoadInputs(cfg.Root)
	if err != nil {
		return Summary{}, err
	}
	if len(inputs) == 0 {
		return Summary{}, fmt.Errorf("no input documents under %s", filepath.Join(cfg.Root, results.InputsDir))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var summary Summary
	for _, key := range keys {
		logging.LogEvent("[RUN] %s: %d inputs", key, len(inputs))
		for _, in := range inputs {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			output := filepath.Join(cfg.Root, key, in.Name())
			summary.Runs++
			if err := runOne(ctx, cfg.Commands[key], in.Path, output, timeout); err != nil {
				logging.LogRun("fail", key, in.Path, err)
				summary.Failures = append(summary.Failures, Failure{Key: key, Input: in.Path, Err: err})
				continue
			}
			logging.LogRun("ok", key, in.Path, output)
			summary.Outputs = append(summary.Outputs, output)
		}
	}

	if len(summary.Failures) > 0 {
		errs := make([]error, 0, len(summary.Failures))
		for _, f := range summary.Failures {
			errs = append(errs, f)
		}
		return summary, fmt.Errorf("%w: %d of %d runs: %w", ErrRunFailed, len(summary.Failures), summary.Runs, errors.Join(errs...))
	}
	return summary, nil
}

func runKeys(cfg Config) ([]string, error) {
	keys := cfg.Keys
	if len(keys) == 0 {
		for key := range cfg.Commands {
			keys = append(keys, key)
		}
		sort.Strings(keys)
	}
	if len(keys) == 0 {
		return nil, results.ErrNoKeys
	}
	for _, key := range keys {
		if err := results.ValidateKey(key); err != nil {
			return nil, err
		}
		if len(cfg.Commands[key]) == 0 {
			return nil, fmt.Errorf("no command configured for key %q", key)
		}
	}
	return keys, nil
}

// runOne executes argv with the input and output paths appended and checks
// that a valid measurement was written.
func runOne(ctx context.Context, argv []string, input, output string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string(nil), argv[1:]...), input, output)
	cmd := execCommand(ctx, argv[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("timed out after %s", timeout)
		}
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	if stderr.Len() > 0 {
		logging.LogRun("stderr", filepath.Base(filepath.Dir(output)), input, stderr.Bytes())
	}
	if _, err := results.ReadMeasurement(output); err != nil {
		return err
	}
	return nil
}
