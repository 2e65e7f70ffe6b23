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

package widget

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/simpledt/datatable"
)

func sampleRendered(t *testing.T) *datatable.RenderedTable {
	t.Helper()
	table, err := datatable.NewTableFromValues(
		[]string{"id", "name"},
		[][]interface{}{{1, "a"}, {2, "b"}, {3, nil}},
	)
	require.NoError(t, err)
	return datatable.Render(table)
}

func TestDataTable_Dimensions(t *testing.T) {
	test.NewTempApp(t)

	dt := NewDataTable(sampleRendered(t))
	rows, cols := dt.table.Length()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	assert.True(t, dt.table.ShowHeaderRow)
	assert.False(t, dt.table.ShowHeaderColumn)
}

func TestDataTable_CellText(t *testing.T) {
	test.NewTempApp(t)

	dt := NewDataTable(sampleRendered(t))

	text, ok := dt.CellText(1, 1)
	require.True(t, ok)
	assert.Equal(t, "b", text)

	text, ok = dt.CellText(2, 1)
	require.True(t, ok)
	assert.Equal(t, "", text)

	_, ok = dt.CellText(3, 0)
	assert.False(t, ok)
	_, ok = dt.CellText(0, -1)
	assert.False(t, ok)
}

func TestDataTable_UpdateCallbacks(t *testing.T) {
	test.NewTempApp(t)

	dt := NewDataTable(sampleRendered(t))

	cell := dt.createCell()
	dt.updateCell(widget.TableCellID{Row: 0, Col: 1}, cell)
	assert.Equal(t, "a", cell.(*widget.Label).Text)

	header := dt.table.CreateHeader()
	dt.updateHeader(widget.TableCellID{Row: -1, Col: 0}, header)
	assert.Equal(t, "id", header.(*widget.Label).Text)
}

func TestDataTable_EmptyAndNil(t *testing.T) {
	test.NewTempApp(t)

	table, err := datatable.NewTable([]datatable.Column{
		{Name: "a", Type: datatable.TypeString},
		{Name: "b", Type: datatable.TypeString},
		{Name: "c", Type: datatable.TypeString},
	}, nil)
	require.NoError(t, err)

	dt := NewDataTable(datatable.Render(table))
	rows, cols := dt.table.Length()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 3, cols)

	dt = NewDataTable(nil)
	rows, cols = dt.table.Length()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, cols)
}

func TestDataTable_ColumnWidth(t *testing.T) {
	test.NewTempApp(t)

	config := DefaultConfig()
	config.AutoAdjustColumnWidths = false
	config.MinColumnWidth = 120
	dt := NewDataTableWithConfig(sampleRendered(t), config)
	assert.Equal(t, float32(120), dt.columnWidth(0))

	dt = NewDataTable(sampleRendered(t))
	assert.GreaterOrEqual(t, dt.columnWidth(1), DefaultConfig().MinColumnWidth)
}

func TestDataTable_OnCellSelected(t *testing.T) {
	test.NewTempApp(t)

	dt := NewDataTable(sampleRendered(t))
	var gotRow, gotCol int
	dt.OnCellSelected(func(row, col int) {
		gotRow, gotCol = row, col
	})
	dt.table.OnSelected(widget.TableCellID{Row: 2, Col: 1})
	assert.Equal(t, 2, gotRow)
	assert.Equal(t, 1, gotCol)
}
