package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/mwiater/benjmark/internal/settings"
)

func TestReportSettings(t *testing.T) {
	s := reportSettings()
	if err := s.Err(); err != nil {
		t.Fatalf("settings error: %v", err)
	}
	if s.OutputPrefix() != "tmpfib" || s.SizeFormat() != "{:d} points" || s.XLabel() != "Nth number" {
		t.Fatalf("overrides not applied: %q %q %q", s.OutputPrefix(), s.SizeFormat(), s.XLabel())
	}
	for _, opt := range settings.Options() {
		switch opt.Name {
		case settings.OutputPrefix, settings.SizeFormat, settings.XLabel:
			continue
		}
		got, _ := s.Get(opt.Name)
		want, _ := settings.Default.Get(opt.Name)
		if got != want {
			t.Fatalf("%s changed: got %v, want %v", opt.Name, got, want)
		}
	}
}

func TestRunCallsEachRendererOnce(t *testing.T) {
	origBars, origLine := renderBarplots, renderLineplot
	t.Cleanup(func() { renderBarplots, renderLineplot = origBars, origLine })

	var calls []string
	var seen []settings.Settings
	check := func(name string, k []string, r string, s settings.Settings) {
		calls = append(calls, name)
		seen = append(seen, s)
		if strings.Join(k, ",") != "cpp,clojure" || r != "../benchmarks/fibonacci" {
			t.Errorf("%s called with keys=%v root=%q", name, k, r)
		}
	}
	renderBarplots = func(k []string, r string, s settings.Settings) ([]string, error) {
		check("bars", k, r, s)
		return []string{"tmpfib_barplot_1.png"}, nil
	}
	renderLineplot = func(k []string, r string, s settings.Settings) (string, error) {
		check("line", k, r, s)
		return "tmpfib_lineplot.png", nil
	}

	if err := run(); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if strings.Join(calls, ",") != "bars,line" {
		t.Fatalf("calls = %v", calls)
	}
	if !seen[0].Equal(seen[1]) {
		t.Fatal("renderers received different settings")
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	origBars := renderBarplots
	t.Cleanup(func() { renderBarplots = origBars })

	boom := errors.New("no results")
	renderBarplots = func([]string, string, settings.Settings) ([]string, error) { return nil, boom }
	if err := run(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
