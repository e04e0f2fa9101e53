// internal/report/report.go
// Package report tabulates datasets per input size and compares every key
// against the first one.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mwiater/benjmark/internal/results"
	"github.com/mwiater/benjmark/internal/settings"
	"github.com/mwiater/benjmark/internal/stats"
)

// Entry is the summary of one key at one size. Times are in nanoseconds.
type Entry struct {
	Key     string  `json:"key"`
	Missing bool    `json:"missing,omitempty"`
	Center  float64 `json:"center_ns,omitempty"`
	Lo      float64 `json:"lo_ns,omitempty"`
	Hi      float64 `json:"hi_ns,omitempty"`
	N       int     `json:"n,omitempty"`
	Delta   string  `json:"delta,omitempty"`
	P       float64 `json:"p,omitempty"`
}

// Row holds the entries for one input size, in key order.
type Row struct {
	Size    int64   `json:"size"`
	Label   string  `json:"label"`
	Entries []Entry `json:"entries"`
}

type Report struct {
	Keys       []string `json:"keys"`
	Statistic  string   `json:"statistic"`
	Confidence float64  `json:"confidence"`
	Rows       []Row    `json:"rows"`
}

// Build summarizes datasets with the statistic and size labels of s.
func Build(datasets []results.Dataset, s settings.Settings) (Report, error) {
	if err := s.Err(); err != nil {
		return Report{}, fmt.Errorf("settings: %w", err)
	}
	r := Report{Statistic: s.Statistic(), Confidence: s.Confidence()}
	for _, ds := range datasets {
		r.Keys = append(r.Keys, ds.Key)
	}

	for _, size := range results.Sizes(datasets) {
		label, err := settings.FormatSize(s.SizeFormat(), size)
		if err != nil {
			return Report{}, err
		}
		row := Row{Size: size, Label: label}

		var base []float64
		for i, ds := range datasets {
			p, ok := ds.Point(size)
			if !ok {
				row.Entries = append(row.Entries, Entry{Key: ds.Key, Missing: true})
				continue
			}
			sum, err := stats.Summarize(p.Samples, s.Statistic(), s.Confidence())
			if err != nil {
				return Report{}, fmt.Errorf("summarize %s size %d: %w", ds.Key, size, err)
			}
			e := Entry{Key: ds.Key, Center: sum.Center, Lo: sum.Lo, Hi: sum.Hi, N: sum.N}
			if i == 0 {
				base = p.Samples
			} else if base != nil {
				c, err := stats.Compare(base, p.Samples)
				if err != nil {
					return Report{}, err
				}
				e.Delta = c.Delta
				e.P = c.P
			}
			row.Entries = append(row.Entries, e)
		}
		r.Rows = append(r.Rows, row)
	}
	return r, nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	deltaStyle  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("12"))
)

// WriteTable renders r as a bordered table: one column per key plus a delta
// column for every key after the first.
func WriteTable(w io.Writer, r Report) error {
	headers := []string{"size"}
	headers = append(headers, r.Keys...)
	for _, key := range r.Keys[min(1, len(r.Keys)):] {
		headers = append(headers, fmt.Sprintf("%s vs %s", key, r.Keys[0]))
	}

	deltaFrom := 1 + len(r.Keys)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= deltaFrom:
				return deltaStyle
			default:
				return cellStyle
			}
		})

	for _, row := range r.Rows {
		cells := []string{row.Label}
		var deltas []string
		for i, e := range row.Entries {
			cells = append(cells, formatEntry(e))
			if i == 0 {
				continue
			}
			switch {
			case e.Missing || row.Entries[0].Missing:
				deltas = append(deltas, "-")
			default:
				deltas = append(deltas, fmt.Sprintf("%s (p=%.3f)", e.Delta, e.P))
			}
		}
		t.Row(append(cells, deltas...)...)
	}

	_, err := fmt.Fprintf(w, "statistic: %s, %.0f%% confidence\n%s\n", r.Statistic, r.Confidence*100, t.Render())
	return err
}

func formatEntry(e Entry) string {
	if e.Missing {
		return "-"
	}
	if e.Center == 0 || e.Hi == e.Lo {
		return fmt.Sprintf("%s n=%d", stats.FormatDuration(e.Center), e.N)
	}
	spread := (e.Hi - e.Lo) / 2 / e.Center * 100
	return fmt.Sprintf("%s ±%.1f%% n=%d", stats.FormatDuration(e.Center), spread, e.N)
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
