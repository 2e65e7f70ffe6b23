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

package generic

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/magpierre/simpledt/datatable"
)

func TestNew_MaterializedTable(t *testing.T) {
	table, err := datatable.NewTable([]datatable.Column{
		{Name: "a", Type: datatable.TypeString},
		{Name: "b", Type: datatable.TypeInt},
		{Name: "c", Type: datatable.TypeFloat},
	}, nil)
	require.NoError(t, err)

	a, err := New(context.Background(), table, nil)
	require.NoError(t, err)
	assert.Len(t, a.DataColumns, 3)
	assert.Empty(t, a.DataRows)
	assert.Equal(t, []string{"a", "b", "c"}, a.DataTable.ColumnNames())
}

func TestNew_NilSource(t *testing.T) {
	_, err := New(context.Background(), nil, nil)
	assert.ErrorIs(t, err, datatable.ErrNoDataSource)

	_, err = New(context.Background(), 42, nil)
	assert.ErrorIs(t, err, datatable.ErrUnsupportedFormat)
}

func TestNew_ArrowTable(t *testing.T) {
	tbl := int64Table(t, "n", []int64{7, 8})
	defer tbl.Release()

	a, err := New(context.Background(), tbl, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"7"}, {"8"}}, a.DataTable.Strings())
}

func TestNew_FileFormats(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o644))
		return path
	}

	tbl := int64Table(t, "id", []int64{1, 2})
	defer tbl.Release()
	var pq bytes.Buffer
	require.NoError(t, pqarrow.WriteTable(tbl, &pq, tbl.NumRows(), parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()))

	cases := []struct {
		name   string
		path   string
		format string
	}{
		{"csv", write("a.csv", []byte("id\n1\n2\n")), "CSV"},
		{"semicolon", write("b.txt", []byte("id;x\n1;a\n2;b\n")), "CSV"},
		{"tsv", write("c.tsv", []byte("id\tx\n1\ta\n2\tb\n")), "CSV"},
		{"json", write("d.json", []byte(`[{"id": 1}, {"id": 2}]`)), "JSON"},
		{"jsonl", write("e.jsonl", []byte("{\"id\": 1}\n{\"id\": 2}\n")), "JSON Lines"},
		{"parquet", write("f.parquet", pq.Bytes()), "Parquet"},
		{"parquet sniffed", write("f.bin", pq.Bytes()), "Parquet"},
		{"json sniffed", write("g", []byte(`[{"id": 1}, {"id": 2}]`)), "JSON"},
		{"xlsx", writeWorkbook(t, dir, "h.xlsx"), "Excel"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loader := NewLoader(tc.path, nil)
			table, err := loader.FetchTable(context.Background())
			require.NoError(t, err)

			assert.Equal(t, "id", table.ColumnNames()[0])
			assert.Equal(t, 2, table.RowCount())
			assert.Equal(t, tc.format, table.Metadata()["format"])

			dataType, err := table.ColumnType(0)
			require.NoError(t, err)
			assert.Equal(t, datatable.TypeInt, dataType)
		})
	}
}

func TestNew_Reader(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "*.csv")
	require.NoError(t, err)
	_, err = f.WriteString("id|name\n1|a\n")
	require.NoError(t, err)
	_, err = f.Seek(0, 0)
	require.NoError(t, err)
	defer f.Close()

	a, err := New(context.Background(), f, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, a.DataTable.ColumnNames())

	// an unnamed reader is sniffed
	a, err = New(context.Background(), strings.NewReader(`{"columns": ["k"], "data": [[1]]}`), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, a.DataTable.ColumnNames())
}

func TestNew_FormatOption(t *testing.T) {
	a, err := New(context.Background(), strings.NewReader("[1,2]"), datatable.Options{"format": "csv", "header": "none"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"[1", "2]"}}, a.DataTable.Strings())

	_, err = New(context.Background(), strings.NewReader("x"), datatable.Options{"format": "yaml"})
	assert.ErrorIs(t, err, datatable.ErrUnsupportedFormat)
}

func TestNew_DeltaSharingProfile(t *testing.T) {
	profile := `{"shareCredentialsVersion": 1, "endpoint": "https://example.com", "bearerToken": "t"}`
	path := filepath.Join(t.TempDir(), "open.share")
	require.NoError(t, os.WriteFile(path, []byte(profile), 0o644))

	_, err := New(context.Background(), path, nil)
	assert.ErrorIs(t, err, datatable.ErrUnsupportedFormat)
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(context.Background(), filepath.Join(t.TempDir(), "none.csv"), nil)
	var srcErr *datatable.SourceError
	assert.ErrorAs(t, err, &srcErr)
}

func int64Table(t *testing.T, name string, values []int64) arrow.Table {
	t.Helper()
	schema := arrow.NewSchema([]arrow.Field{{Name: name, Type: arrow.PrimitiveTypes.Int64}}, nil)
	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()
	b.Field(0).(*array.Int64Builder).AppendValues(values, nil)
	rec := b.NewRecord()
	defer rec.Release()
	return array.NewTableFromRecords(schema, []arrow.Record{rec})
}

func writeWorkbook(t *testing.T, dir, name string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"id"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{2}))
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}
