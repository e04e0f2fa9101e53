package appconfig

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/k0kubun/pp"
)

// ShowConfig prints the current configuration summary. With debug set the
// whole structure is dumped as well.
func ShowConfig(out io.Writer, file string, cfg Config, debug bool) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:        %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Results Root: %s\n", cfg.Root)
	fmt.Fprintf(out, "  Keys:         %s\n", strings.Join(cfg.Keys, ", "))
	fmt.Fprintf(out, "  Run Timeout:  %s\n", cfg.RunTimeout())
	fmt.Fprintf(out, "  Log File:     %s\n", valueOr(cfg.LogFilePath(), "(stdout only)"))

	if len(cfg.Settings) > 0 {
		fmt.Fprintln(out, "  Settings:")
		for _, name := range sortedKeys(cfg.Settings) {
			fmt.Fprintf(out, "    %s = %v\n", name, cfg.Settings[name])
		}
	}
	if len(cfg.Commands) > 0 {
		fmt.Fprintln(out, "  Commands:")
		for _, key := range sortedKeys(cfg.Commands) {
			fmt.Fprintf(out, "    %s: %s\n", key, strings.Join(cfg.Commands[key], " "))
		}
	}

	if debug {
		fmt.Fprintln(out)
		pp.Fprintln(out, cfg)
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
