package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"dotaresponses/internal/domain"
)

// renderTable formats rows with a rounded border. Columns listed in
// rightAlign are right-aligned.
func renderTable(headers []string, rows [][]string, rightAlign map[int]bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = v
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if rightAlign[i] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    80,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func renderResponses(res domain.GroupedResponses) string {
	rows := make([][]string, 0, res.Len())
	for _, gm := range res {
		for _, r := range gm.Responses {
			rows = append(rows, []string{gm.Display, r.Text, r.AudioRef()})
		}
	}
	return renderTable([]string{"Hero", "Response", "Audio"}, rows, nil)
}
