// cmd/benjmark/main.go
package main

import (
	cmd "github.com/mwiater/benjmark/internal/cli"
)

// main starts the benjmark CLI by delegating to the cobra root command.
func main() {
	cmd.Execute()
}
