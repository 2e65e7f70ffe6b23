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

package windows

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Velocidex/ordereddict"
	gojson "github.com/goccy/go-json"

	"github.com/magpierre/simpledt/datatable"
)

// ExportFormat represents the supported export formats
type ExportFormat int

const (
	FormatCSV ExportFormat = iota
	FormatJSON
)

// ExportFormatFor picks the export format from a file name.
func ExportFormatFor(name string) ExportFormat {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

// Export writes the rendered table to w in the given format.
func Export(rt *datatable.RenderedTable, w io.Writer, format ExportFormat) error {
	switch format {
	case FormatJSON:
		return ExportToJSON(rt, w)
	default:
		return ExportToCSV(rt, w)
	}
}

// ExportToCSV writes the header and the display text of every cell.
func ExportToCSV(rt *datatable.RenderedTable, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(rt.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rt.Strings() {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ExportToJSON writes the rows as an array of records, keeping column order.
func ExportToJSON(rt *datatable.RenderedTable, w io.Writer) error {
	records := make([]*ordereddict.Dict, len(rt.Rows))
	for i, row := range rt.Rows {
		record := ordereddict.NewDict()
		for j, cell := range row.Cells {
			record.Set(rt.Columns[j].Name, jsonValue(cell.Value))
		}
		records[i] = record
	}

	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func jsonValue(v datatable.Value) interface{} {
	if v.IsNull {
		return nil
	}
	switch v.Type {
	case datatable.TypeInt, datatable.TypeFloat, datatable.TypeBool,
		datatable.TypeStruct, datatable.TypeList:
		return v.Raw
	}
	return v.Formatted
}
