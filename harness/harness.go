// harness/harness.go
// Package harness times a computation for the benjmark runner. A benchmark
// program reads one input document, runs the computation a number of times
// and writes a measurement document the report tools understand.
package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mwiater/benjmark/internal/results"
)

const defaultRepetitions = 5

// Setup adapts a computation to the harness. Input decodes the "data" field
// of the input document, Compute is the timed call, and Output converts the
// last result into a JSON-encodable value.
type Setup[In, Out any] interface {
	Input(src json.RawMessage) (In, error)
	Compute(in In) Out
	Output(out Out) (any, error)
}

type config struct {
	key         string
	repetitions int
	now         func() time.Time
}

// Option customizes Perform.
type Option func(*config)

// WithKey records the dataset key in the measurement document.
func WithKey(key string) Option {
	return func(c *config) { c.key = key }
}

// WithRepetitions sets the repetitions used when the input document names none.
func WithRepetitions(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.repetitions = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// Perform reads inputFile, times setup.Compute and writes outputFile.
// Warmup calls are not timed. Cancellation is checked between calls.
func Perform[In, Out any](ctx context.Context, setup Setup[In, Out], inputFile, outputFile string, opts ...Option) error {
	cfg := config{repetitions: defaultRepetitions, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	doc, err := results.ReadInput(inputFile)
	if err != nil {
		return err
	}
	in, err := setup.Input(doc.Data)
	if err != nil {
		return fmt.Errorf("decode input %s: %w", inputFile, err)
	}

	repetitions := cfg.repetitions
	if doc.Repetitions > 0 {
		repetitions = doc.Repetitions
	}

	for i := 0; i < doc.Warmup; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		setup.Compute(in)
	}

	var out Out
	samples := make([]float64, 0, repetitions)
	for i := 0; i < repetitions; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := cfg.now()
		out = setup.Compute(in)
		samples = append(samples, float64(cfg.now().Sub(start).Nanoseconds()))
	}

	value, err := setup.Output(out)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	return results.Write(outputFile, results.Measurement{
		Key:         cfg.key,
		Size:        doc.Size,
		Repetitions: repetitions,
		SamplesNs:   samples,
		Input:       doc.Data,
		Output:      encoded,
		Timestamp:   cfg.now().UTC().Format(time.RFC3339),
	})
}
