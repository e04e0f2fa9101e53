// cmd/fibonacci/main.go
// Command fibonacci is the Go entry of the fibonacci benchmark. It reads an
// input document whose data is N and records the time to compute fib(N).
//
//	fibonacci <input.json> <output.json>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/mwiater/benjmark/harness"
)

type fibSetup struct{}

func (fibSetup) Input(src json.RawMessage) (int64, error) {
	var n int64
	if err := json.Unmarshal(src, &n); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative index %d", n)
	}
	return n, nil
}

func (fibSetup) Compute(n int64) int64 { return fibonacci(n) }

func (fibSetup) Output(v int64) (any, error) { return v, nil }

// fibonacci is the naive exponential recursion.
func fibonacci(n int64) int64 {
	if n < 2 {
		return n
	}
	return fibonacci(n-1) + fibonacci(n-2)
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: fibonacci <input.json> <output.json>")
		os.Exit(2)
	}
	err := harness.Perform[int64, int64](context.Background(), fibSetup{}, os.Args[1], os.Args[2], harness.WithKey("go"))
	if err != nil {
		log.Fatal(err)
	}
}
