// Package exporters summarizes which exporters a configuration enables.
package exporters

import (
	"slices"
	"strconv"

	"github.com/assetbot/assetbot/internal/config"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Entry describes one exporter known to a configuration.
type Entry struct {
	Name       string
	Allowed    bool
	Configured bool // has an [exporters.<name>] table
	Options    int
}

// Entries lists every exporter that has an options table or appears in the
// allow-list, sorted by name.
func Entries(cfg *config.Config) []Entry {
	exporters := cfg.Exporters()
	names := cfg.ExporterNames()
	for _, name := range cfg.AllowedExporters() {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		opts, configured := exporters[name]
		entries = append(entries, Entry{
			Name:       name,
			Allowed:    cfg.ExporterAllowed(name),
			Configured: configured,
			Options:    len(opts),
		})
	}
	return entries
}

// Render formats entries as a table for the terminal.
func Render(entries []Entry) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Exporter", "Allowed", "Configured", "Options"})

	for _, e := range entries {
		tw.AppendRow(table.Row{e.Name, yesNo(e.Allowed), yesNo(e.Configured), strconv.Itoa(e.Options)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
