// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package datatable

// DisplayColumn is a column header prepared for presentation.
type DisplayColumn struct {
	Name string
	Type DataType
}

// DisplayCell is a single value prepared for presentation.
type DisplayCell struct {
	Value Value
}

// Text returns the display string of the cell.
func (c DisplayCell) Text() string {
	return c.Value.Formatted
}

// DisplayRow holds one DisplayCell per column, in column order.
type DisplayRow struct {
	Cells []DisplayCell
}

// RenderedTable is the composed display structure handed to a
// presentation layer.
type RenderedTable struct {
	Columns []DisplayColumn
	Rows    []DisplayRow
}

// Render projects a Table into display columns and rows, keeping the
// column and row order of the table.
func Render(t *Table) *RenderedTable {
	columns := make([]DisplayColumn, len(t.columns))
	for i, c := range t.columns {
		columns[i] = DisplayColumn{Name: c.Name, Type: c.Type}
	}

	rows := make([]DisplayRow, len(t.rows))
	for i, row := range t.rows {
		cells := make([]DisplayCell, len(row))
		for j, v := range row {
			cells[j] = DisplayCell{Value: v}
		}
		rows[i] = DisplayRow{Cells: cells}
	}

	return &RenderedTable{Columns: columns, Rows: rows}
}

// ColumnNames returns the header names in order.
func (rt *RenderedTable) ColumnNames() []string {
	names := make([]string, len(rt.Columns))
	for i, c := range rt.Columns {
		names[i] = c.Name
	}
	return names
}

// Strings returns the display text of every cell, row by row.
func (rt *RenderedTable) Strings() [][]string {
	out := make([][]string, len(rt.Rows))
	for i, row := range rt.Rows {
		texts := make([]string, len(row.Cells))
		for j, c := range row.Cells {
			texts[j] = c.Text()
		}
		out[i] = texts
	}
	return out
}
