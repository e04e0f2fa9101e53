package harness

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mwiater/benjmark/internal/results"
)

type squareSetup struct {
	calls int
}

func (s *squareSetup) Input(src json.RawMessage) (int64, error) {
	var x int64
	err := json.Unmarshal(src, &x)
	return x, err
}

func (s *squareSetup) Compute(x int64) int64 {
	s.calls++
	return x * x
}

func (s *squareSetup) Output(x int64) (any, error) {
	return x, nil
}

// stepClock advances one millisecond per call.
func stepClock() func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPerformWritesMeasurement(t *testing.T) {
	input := writeInput(t, `{"size":12,"repetitions":3,"warmup":2,"data":12}`)
	output := filepath.Join(t.TempDir(), "go", "12.json")
	setup := &squareSetup{}

	err := Perform[int64, int64](context.Background(), setup, input, output, WithKey("go"), WithClock(stepClock()))
	if err != nil {
		t.Fatalf("Perform error: %v", err)
	}
	if setup.calls != 5 {
		t.Fatalf("expected 2 warmup + 3 timed calls, got %d", setup.calls)
	}

	m, err := results.ReadMeasurement(output)
	if err != nil {
		t.Fatalf("ReadMeasurement error: %v", err)
	}
	if m.Key != "go" || m.Size != 12 || m.Repetitions != 3 {
		t.Fatalf("unexpected measurement: %+v", m)
	}
	if len(m.SamplesNs) != 3 {
		t.Fatalf("expected 3 samples, got %v", m.SamplesNs)
	}
	for _, s := range m.SamplesNs {
		if s != float64(time.Millisecond) {
			t.Fatalf("expected 1ms samples, got %v", m.SamplesNs)
		}
	}
	if string(m.Output) != "144" {
		t.Fatalf("output = %s", m.Output)
	}
}

func TestPerformDefaultRepetitions(t *testing.T) {
	input := writeInput(t, `{"size":2,"data":2}`)
	output := filepath.Join(t.TempDir(), "2.json")
	setup := &squareSetup{}

	if err := Perform[int64, int64](context.Background(), setup, input, output, WithRepetitions(4)); err != nil {
		t.Fatalf("Perform error: %v", err)
	}
	if setup.calls != 4 {
		t.Fatalf("expected 4 calls, got %d", setup.calls)
	}
}

func TestPerformErrors(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.json")

	if err := Perform[int64, int64](context.Background(), &squareSetup{}, writeInput(t, `{"size":1}`), output); !errors.Is(err, results.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := Perform[int64, int64](context.Background(), &squareSetup{}, writeInput(t, `{"size":1,"data":"x"}`), output); err == nil {
		t.Fatal("expected decode error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Perform[int64, int64](ctx, &squareSetup{}, writeInput(t, `{"size":1,"data":1}`), output); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("no output should be written on failure, stat err = %v", err)
	}
}
