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

// Package arrow converts Apache Arrow tables and Parquet files into a datatable.
package arrow

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/magpierre/simpledt/datatable"
)

// FromArrowTable copies an Arrow table into a datatable.Table.
// The Arrow table is not released.
func FromArrowTable(tbl arrow.Table) (*datatable.Table, error) {
	if tbl == nil {
		return nil, datatable.ErrNoDataSource
	}

	schema := tbl.Schema()
	columns := make([]datatable.Column, schema.NumFields())
	for i, field := range schema.Fields() {
		columns[i] = datatable.Column{Name: field.Name, Type: DataTypeOf(field.Type)}
	}

	numRows := int(tbl.NumRows())
	rows := make([][]datatable.Value, numRows)
	for i := range rows {
		rows[i] = make([]datatable.Value, len(columns))
	}

	if numRows > 0 {
		tr := array.NewTableReader(tbl, tbl.NumRows())
		defer tr.Release()

		offset := 0
		for tr.Next() {
			rec := tr.Record()
			n := int(rec.NumRows())
			for colIdx, col := range rec.Columns() {
				dataType := columns[colIdx].Type
				for pos := 0; pos < n; pos++ {
					rows[offset+pos][colIdx] = datatable.NewValue(rawValue(col, pos), dataType)
				}
			}
			offset += n
		}
		if err := tr.Err(); err != nil {
			return nil, fmt.Errorf("error reading table: %w", err)
		}
	}

	return datatable.NewTable(columns, rows)
}

// DataTypeOf maps an Arrow data type to a datatable column type.
func DataTypeOf(dt arrow.DataType) datatable.DataType {
	switch dt.ID() {
	case arrow.STRING, arrow.LARGE_STRING:
		return datatable.TypeString
	case arrow.BINARY, arrow.LARGE_BINARY, arrow.FIXED_SIZE_BINARY:
		return datatable.TypeBinary
	case arrow.BOOL:
		return datatable.TypeBool
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return datatable.TypeInt
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return datatable.TypeFloat
	case arrow.DATE32, arrow.DATE64:
		return datatable.TypeDate
	case arrow.TIMESTAMP:
		return datatable.TypeTimestamp
	case arrow.DECIMAL128:
		return datatable.TypeDecimal
	case arrow.STRUCT, arrow.MAP:
		return datatable.TypeStruct
	case arrow.LIST, arrow.LARGE_LIST, arrow.FIXED_SIZE_LIST:
		return datatable.TypeList
	default:
		return datatable.TypeString
	}
}

// rawValue returns the Go value of an Arrow column at a position.
func rawValue(col arrow.Array, pos int) interface{} {
	if col.IsNull(pos) {
		return nil
	}

	switch col.DataType().ID() {
	case arrow.STRING:
		return col.(*array.String).Value(pos)
	case arrow.LARGE_STRING:
		return col.(*array.LargeString).Value(pos)

	case arrow.BINARY:
		return append([]byte(nil), col.(*array.Binary).Value(pos)...)

	case arrow.BOOL:
		return col.(*array.Boolean).Value(pos)

	case arrow.INT8:
		return int64(col.(*array.Int8).Value(pos))
	case arrow.INT16:
		return int64(col.(*array.Int16).Value(pos))
	case arrow.INT32:
		return int64(col.(*array.Int32).Value(pos))
	case arrow.INT64:
		return col.(*array.Int64).Value(pos)
	case arrow.UINT8:
		return int64(col.(*array.Uint8).Value(pos))
	case arrow.UINT16:
		return int64(col.(*array.Uint16).Value(pos))
	case arrow.UINT32:
		return int64(col.(*array.Uint32).Value(pos))
	case arrow.UINT64:
		return datatable.Normalize(col.(*array.Uint64).Value(pos))

	case arrow.FLOAT16:
		return float64(col.(*array.Float16).Value(pos).Float32())
	case arrow.FLOAT32:
		return float64(col.(*array.Float32).Value(pos))
	case arrow.FLOAT64:
		return col.(*array.Float64).Value(pos)

	case arrow.DATE32:
		return col.(*array.Date32).Value(pos).ToTime()
	case arrow.DATE64:
		return col.(*array.Date64).Value(pos).ToTime()

	case arrow.TIMESTAMP:
		unit := col.DataType().(*arrow.TimestampType).Unit
		return col.(*array.Timestamp).Value(pos).ToTime(unit)

	case arrow.DECIMAL128:
		scale := col.DataType().(*arrow.Decimal128Type).Scale
		return col.(*array.Decimal128).Value(pos).ToString(scale)

	case arrow.STRUCT, arrow.MAP, arrow.LIST, arrow.LARGE_LIST, arrow.FIXED_SIZE_LIST:
		return col.GetOneForMarshal(pos)

	default:
		return col.ValueStr(pos)
	}
}
