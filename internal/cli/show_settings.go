// internal/cli/show_settings.go
package benjmark

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mwiater/benjmark/internal/settings"
	"github.com/spf13/cobra"
)

var showSettingsOverrides []string

// showSettingsCmd lists every plot setting with its effective value.
var showSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "List plot settings with their effective values",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getConfig().ReportSettings(showSettingsOverrides)
		if err != nil {
			return err
		}
		return writeSettingsTable(cmd.OutOrStdout(), s)
	},
}

func writeSettingsTable(w io.Writer, s settings.Settings) error {
	changed := lipgloss.NewStyle().Bold(true)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("name", "kind", "value", "default", "description")
	for _, opt := range settings.Options() {
		value, _ := s.Get(opt.Name)
		cell := fmt.Sprint(value)
		if s.IsSet(opt.Name) {
			cell = changed.Render(cell)
		}
		t.Row(opt.Name, opt.Kind.String(), cell, fmt.Sprint(opt.Default), opt.Description)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func init() {
	showSettingsCmd.Flags().StringArrayVar(&showSettingsOverrides, "set", nil, "override a setting (name=value), repeatable")
	showCmd.AddCommand(showSettingsCmd)
}
