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

// Package widget displays a rendered datatable in a fyne Table.
package widget

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/simpledt/datatable"
)

// sampleRows bounds how many rows are measured when sizing columns.
const sampleRows = 50

// Config holds display options for a DataTable.
type Config struct {
	// ShowHeaderRow shows column names in a sticky header row.
	ShowHeaderRow bool

	// MinColumnWidth is the narrowest a column is drawn.
	MinColumnWidth float32

	// AutoAdjustColumnWidths sizes each column to fit its header and
	// the first rows of data.
	AutoAdjustColumnWidths bool
}

// DefaultConfig returns the default display options.
func DefaultConfig() Config {
	return Config{
		ShowHeaderRow:          true,
		MinColumnWidth:         80,
		AutoAdjustColumnWidths: true,
	}
}

// DataTable is a read-only table of display cells.
type DataTable struct {
	widget.BaseWidget

	data   *datatable.RenderedTable
	config Config
	table  *widget.Table

	onCellSelected func(row, col int)
}

// NewDataTable creates a DataTable with DefaultConfig.
func NewDataTable(data *datatable.RenderedTable) *DataTable {
	return NewDataTableWithConfig(data, DefaultConfig())
}

// NewDataTableWithConfig creates a DataTable with the given options.
// A nil data shows an empty table.
func NewDataTableWithConfig(data *datatable.RenderedTable, config Config) *DataTable {
	if data == nil {
		data = &datatable.RenderedTable{}
	}
	dt := &DataTable{data: data, config: config}

	dt.table = widget.NewTableWithHeaders(dt.length, dt.createCell, dt.updateCell)
	dt.table.ShowHeaderRow = config.ShowHeaderRow
	dt.table.ShowHeaderColumn = false
	dt.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	dt.table.UpdateHeader = dt.updateHeader
	dt.table.OnSelected = func(id widget.TableCellID) {
		if dt.onCellSelected != nil {
			dt.onCellSelected(id.Row, id.Col)
		}
	}

	dt.ExtendBaseWidget(dt)
	dt.applyColumnWidths()
	return dt
}

// CreateRenderer implements fyne.Widget.
func (dt *DataTable) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dt.table)
}

// OnCellSelected registers a callback for cell selection.
func (dt *DataTable) OnCellSelected(fn func(row, col int)) {
	dt.onCellSelected = fn
}

// Data returns the displayed table.
func (dt *DataTable) Data() *datatable.RenderedTable {
	return dt.data
}

// CellText returns the text shown in a cell, or false if out of range.
func (dt *DataTable) CellText(row, col int) (string, bool) {
	if row < 0 || row >= len(dt.data.Rows) {
		return "", false
	}
	cells := dt.data.Rows[row].Cells
	if col < 0 || col >= len(cells) {
		return "", false
	}
	return cells[col].Text(), true
}

func (dt *DataTable) length() (int, int) {
	return len(dt.data.Rows), len(dt.data.Columns)
}

func (dt *DataTable) createCell() fyne.CanvasObject {
	label := widget.NewLabel("")
	label.Truncation = fyne.TextTruncateEllipsis
	return label
}

func (dt *DataTable) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	text, _ := dt.CellText(id.Row, id.Col)
	obj.(*widget.Label).SetText(text)
}

func (dt *DataTable) updateHeader(id widget.TableCellID, obj fyne.CanvasObject) {
	label := obj.(*widget.Label)
	if id.Row < 0 && id.Col >= 0 && id.Col < len(dt.data.Columns) {
		label.SetText(dt.data.Columns[id.Col].Name)
		return
	}
	label.SetText("")
}

// applyColumnWidths sets every column to its configured width.
func (dt *DataTable) applyColumnWidths() {
	for col := range dt.data.Columns {
		dt.table.SetColumnWidth(col, dt.columnWidth(col))
	}
}

func (dt *DataTable) columnWidth(col int) float32 {
	width := dt.config.MinColumnWidth
	if !dt.config.AutoAdjustColumnWidths {
		return width
	}

	textSize := theme.TextSize()
	padding := theme.Padding() * 4

	header := fyne.MeasureText(dt.data.Columns[col].Name, textSize, fyne.TextStyle{Bold: true}).Width + padding
	if header > width {
		width = header
	}
	for row := 0; row < len(dt.data.Rows) && row < sampleRows; row++ {
		text, _ := dt.CellText(row, col)
		if w := fyne.MeasureText(text, textSize, fyne.TextStyle{}).Width + padding; w > width {
			width = w
		}
	}
	return width
}
