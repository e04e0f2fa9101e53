// cmd/fibreport/main.go
// Command fibreport renders the fibonacci benchmark plots for the C++ and
// Clojure implementations.
package main

import (
	"log"

	"github.com/mwiater/benjmark/internal/render"
	"github.com/mwiater/benjmark/internal/settings"
)

const root = "../benchmarks/fibonacci"

var keys = []string{"cpp", "clojure"}

var (
	renderBarplots = render.RenderBarplots
	renderLineplot = render.RenderLineplot
)

func reportSettings() settings.Settings {
	return settings.Default.
		Set(settings.OutputPrefix, "tmpfib").
		Set(settings.SizeFormat, "{:d} points").
		Set(settings.XLabel, "Nth number")
}

func run() error {
	s := reportSettings()
	if _, err := renderBarplots(keys, root, s); err != nil {
		return err
	}
	_, err := renderLineplot(keys, root, s)
	return err
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
