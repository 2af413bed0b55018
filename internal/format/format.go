// Package format renders GitHub-flavoured Markdown tables for the generated
// wiki pages, wrapping go-pretty behind a small project-owned interface.
package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// TableBuilder is the project-owned table abstraction. Build a table once,
// then render it as Markdown via String.
type TableBuilder interface {
	// Header sets the column headers.
	Header(cols ...string)
	// Row appends a data row.
	Row(vals ...any)
	// String renders the table as a Markdown table.
	String() string
}

// NewTable returns an empty Markdown TableBuilder.
func NewTable() TableBuilder {
	return &prettyAdapter{writer: table.NewWriter()}
}

// prettyAdapter wraps go-pretty/v6/table.Writer behind the TableBuilder interface.
type prettyAdapter struct {
	writer table.Writer
}

func (a *prettyAdapter) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	a.writer.AppendHeader(row)
}

func (a *prettyAdapter) Row(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	a.writer.AppendRow(row)
}

func (a *prettyAdapter) String() string {
	return a.writer.RenderMarkdown()
}
