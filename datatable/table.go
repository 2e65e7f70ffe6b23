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

import (
	"fmt"
)

// Table is an immutable in-memory snapshot of tabular data.
// Every row holds exactly one Value per column, in column order.
type Table struct {
	columns  []Column
	rows     [][]Value
	metadata Metadata
}

// NewTable creates a Table from columns and typed rows.
// Returns ErrRowWidth if any row is not as wide as the column list.
func NewTable(columns []Column, rows [][]Value) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d values, expected %d",
				ErrRowWidth, i, len(row), len(columns))
		}
	}

	cols := make([]Column, len(columns))
	copy(cols, columns)

	return &Table{
		columns:  cols,
		rows:     rows,
		metadata: Metadata{},
	}, nil
}

// NewTableFromValues creates a Table from column names and raw Go values.
// The type of each column is inferred from its non-null values.
func NewTableFromValues(names []string, rows [][]interface{}) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("%w: row %d has %d values, expected %d",
				ErrRowWidth, i, len(row), len(names))
		}
	}

	columns := make([]Column, len(names))
	typed := make([][]Value, len(rows))
	for i := range typed {
		typed[i] = make([]Value, len(names))
	}

	colValues := make([]interface{}, len(rows))
	for c, name := range names {
		for r, row := range rows {
			colValues[r] = Normalize(row[c])
		}
		dataType := InferType(colValues)
		columns[c] = Column{Name: name, Type: dataType}
		for r := range rows {
			typed[r][c] = NewValue(coerce(colValues[r], dataType), dataType)
		}
	}

	return NewTable(columns, typed)
}

// FromDataSource copies any DataSource into a Table snapshot.
func FromDataSource(ds DataSource) (*Table, error) {
	if ds == nil {
		return nil, ErrNoDataSource
	}
	if t, ok := ds.(*Table); ok {
		return t, nil
	}

	columns := make([]Column, ds.ColumnCount())
	for i := range columns {
		name, err := ds.ColumnName(i)
		if err != nil {
			return nil, err
		}
		dataType, err := ds.ColumnType(i)
		if err != nil {
			return nil, err
		}
		columns[i] = Column{Name: name, Type: dataType}
	}

	rows := make([][]Value, ds.RowCount())
	for i := range rows {
		row, err := ds.Row(i)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}

	t, err := NewTable(columns, rows)
	if err != nil {
		return nil, err
	}
	for k, v := range ds.Metadata() {
		t.metadata[k] = v
	}
	return t, nil
}

// RowCount implements DataSource.
func (t *Table) RowCount() int { return len(t.rows) }

// ColumnCount implements DataSource.
func (t *Table) ColumnCount() int { return len(t.columns) }

// ColumnName implements DataSource.
func (t *Table) ColumnName(col int) (string, error) {
	if col < 0 || col >= len(t.columns) {
		return "", ErrInvalidColumn
	}
	return t.columns[col].Name, nil
}

// ColumnType implements DataSource.
func (t *Table) ColumnType(col int) (DataType, error) {
	if col < 0 || col >= len(t.columns) {
		return TypeString, ErrInvalidColumn
	}
	return t.columns[col].Type, nil
}

// Cell implements DataSource.
func (t *Table) Cell(row, col int) (Value, error) {
	if row < 0 || row >= len(t.rows) {
		return Value{}, ErrInvalidRow
	}
	if col < 0 || col >= len(t.columns) {
		return Value{}, ErrInvalidColumn
	}
	return t.rows[row][col], nil
}

// Row implements DataSource.
func (t *Table) Row(row int) ([]Value, error) {
	if row < 0 || row >= len(t.rows) {
		return nil, ErrInvalidRow
	}
	out := make([]Value, len(t.rows[row]))
	copy(out, t.rows[row])
	return out, nil
}

// Metadata implements DataSource.
func (t *Table) Metadata() Metadata { return t.metadata }

// SetMetadata records a metadata entry such as the source name.
func (t *Table) SetMetadata(key string, value interface{}) {
	t.metadata[key] = value
}

// Columns returns a copy of the column descriptors.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Rows returns the rows in order. The outer slice is a copy; the
// caller must not modify the values.
func (t *Table) Rows() [][]Value {
	out := make([][]Value, len(t.rows))
	copy(out, t.rows)
	return out
}

// RawRows returns the raw value of every cell, row by row.
func (t *Table) RawRows() [][]interface{} {
	out := make([][]interface{}, len(t.rows))
	for i, row := range t.rows {
		raw := make([]interface{}, len(row))
		for j, v := range row {
			raw[j] = v.Raw
		}
		out[i] = raw
	}
	return out
}
