package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshStats rebuilds the ring statistics table from the current layers.
func (m *Model) refreshStats() {
	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "ring", Width: 12},
		{Title: "ε", Width: 6},
		{Title: "raw", Width: 6},
		{Title: "kept", Width: 6},
		{Title: "kept %", Width: 7},
		{Title: "path bytes", Width: 10},
	}
	var rows []table.Row
	for i, l := range m.allLayers() {
		eps := "-"
		if l.Simplifies() {
			eps = fmt.Sprintf("%.2f", l.Epsilon)
		}
		pct := "-"
		if len(l.Raw) > 0 {
			pct = fmt.Sprintf("%.1f", 100*float64(len(l.Simplified))/float64(len(l.Raw)))
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			l.Name,
			eps,
			fmt.Sprintf("%d", len(l.Raw)),
			fmt.Sprintf("%d", len(l.Simplified)),
			pct,
			fmt.Sprintf("%d", pathBytes(l.Simplified)),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}
