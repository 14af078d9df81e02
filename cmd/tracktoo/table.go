package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/CloudCante/Tracking-TOO/internal/cycle"
	"github.com/CloudCante/Tracking-TOO/internal/report"
)

func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderMilestonePreview transposes one milestone row into a field/value
// table; twelve columns side by side do not fit a terminal.
func renderMilestonePreview(m cycle.Milestones, conv report.Converter) string {
	values := report.Row(m, conv)
	rows := make([][]string, 0, len(report.Header))
	for i, name := range report.Header {
		rows = append(rows, []string{name, values[i]})
	}
	return renderTable([]string{"Field", "Value"}, rows)
}
