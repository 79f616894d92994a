package internal

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Render formats the run counters as a table.
func (s *Summary) Render() string {
	errCount := 0
	if s.Errors != nil {
		errCount = s.Errors.Total
	}
	rows := []struct {
		label string
		value int
	}{
		{"Scanned", s.Scanned},
		{"Copied", s.Copied},
		{"Copied to unsorted", s.CopiedUnsorted},
		{"Replaced with larger", s.Replaced},
		{"Skipped (timestamp differs)", s.SkippedTimestamp},
		{"Skipped (not larger)", s.SkippedSize},
		{"Errors", errCount},
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"Outcome", "Files"})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.label, strconv.Itoa(r.value)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
