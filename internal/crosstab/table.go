// Package crosstab renders two-dimensional cross-section tables: one
// axis of variables per rows, one per columns, each cell evaluated under
// the base selection completed by that cell's row and column variable.
package crosstab

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/reportgridgo/internal/render"
	"github.com/vk/reportgridgo/internal/selection"
	"github.com/vk/reportgridgo/internal/token"
)

// Table combines independent row and column axes over a shared base
// selection. It is a standalone renderable leaf, not a scope tree node.
//
// A row or column variable applies to its entire row or column, so each
// cell is the cross-section of the two. The row variable merges before
// the column variable and therefore wins when both would set the same
// unset field.
type Table struct {
	rows []token.Arg
	cols []token.Arg
	base *selection.Selection
	eval render.Evaluator
}

// New returns a table over the given axes and base selection.
func New(rows, cols []token.Arg, base *selection.Selection, eval render.Evaluator) *Table {
	if base == nil {
		base = selection.New()
	}
	return &Table{rows: rows, cols: cols, base: base, eval: eval}
}

// Render produces a markdown grid: a header row of column labels behind
// a placeholder corner cell, a separator row, then one body row per row
// variable. Any failing cell aborts the whole table.
func (t *Table) Render(ctx context.Context, ambient *selection.Selection) (string, error) {
	base := t.base.Clone()
	base.Inherit(ambient)

	var out strings.Builder
	out.WriteString("\n| _ |")
	for _, col := range t.cols {
		fmt.Fprintf(&out, " %s |", col)
	}
	out.WriteString("\n|")
	for i := 0; i < len(t.cols)+1; i++ {
		out.WriteString(" --- |")
	}

	for _, row := range t.rows {
		rowSel := base.Clone()
		row.Fill(rowSel)
		fmt.Fprintf(&out, "\n| %s |", row)
		for _, col := range t.cols {
			cellSel := rowSel.Clone()
			col.Fill(cellSel)
			fragment, err := t.eval.Evaluate(ctx, cellSel)
			if err != nil {
				return "", fmt.Errorf("table cell (%s, %s): %w", row, col, err)
			}
			fmt.Fprintf(&out, " %s |", fragment)
		}
	}
	out.WriteString("\n")
	return out.String(), nil
}

// Clone deep-copies the table. Axis args are values and copy by slice.
func (t *Table) Clone() render.Component {
	rows := make([]token.Arg, len(t.rows))
	copy(rows, t.rows)
	cols := make([]token.Arg, len(t.cols))
	copy(cols, t.cols)
	return &Table{rows: rows, cols: cols, base: t.base.Clone(), eval: t.eval}
}
