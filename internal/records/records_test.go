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

package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/simpledt/datatable"
)

func TestShape_Defaults(t *testing.T) {
	table, err := Shape([][]string{{"a", "b"}, {"1", "x"}, {"2"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, table.ColumnNames())
	assert.Equal(t, [][]string{{"1", "x"}, {"2", ""}}, datatable.Render(table).Strings())

	cell, err := table.Cell(1, 1)
	require.NoError(t, err)
	assert.True(t, cell.IsNull)
}

func TestShape_HeaderIndex(t *testing.T) {
	recs := [][]string{{"title"}, {"k", "v"}, {"a", "1"}}
	table, err := Shape(recs, datatable.Options{"header": 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "v"}, table.ColumnNames())
	assert.Equal(t, 1, table.RowCount())
}

func TestShape_HeaderMissing(t *testing.T) {
	_, err := Shape(nil, nil)
	assert.Error(t, err)

	table, err := Shape(nil, datatable.Options{"names": []string{"a", "b", "c"}})
	require.NoError(t, err)
	assert.Equal(t, 3, table.ColumnCount())
	assert.Equal(t, 0, table.RowCount())
}

func TestShape_NullMarkers(t *testing.T) {
	recs := [][]string{{"a"}, {"NA"}, {"missing"}, {"1"}}

	table, err := Shape(recs, datatable.Options{"na_values": "missing"})
	require.NoError(t, err)
	dataType, _ := table.ColumnType(0)
	assert.Equal(t, datatable.TypeInt, dataType)

	table, err = Shape(recs, datatable.Options{"keep_default_na": false})
	require.NoError(t, err)
	dataType, _ = table.ColumnType(0)
	assert.Equal(t, datatable.TypeString, dataType)
}

func TestHeaderRow(t *testing.T) {
	for _, tc := range []struct {
		value interface{}
		want  int
	}{
		{nil, -1}, {false, -1}, {"none", -1}, {true, 0}, {"infer", 0}, {2, 2}, {"3", 3},
	} {
		got, err := HeaderRow(datatable.Options{"header": tc.value})
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%v", tc.value)
	}

	got, err := HeaderRow(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = HeaderRow(datatable.Options{"header": "first"})
	assert.ErrorIs(t, err, datatable.ErrInvalidOption)
}

func TestColumnNames(t *testing.T) {
	assert.Equal(t, []string{"a", "Unnamed: 1", "a.1", "a.2", "Unnamed: 4"},
		ColumnNames([]string{"a", " ", "a", "a"}, 5))
	assert.Equal(t, []string{"0", "1"}, ColumnNames(nil, 2))
}

func TestShape_NegativeOptions(t *testing.T) {
	recs := [][]string{{"id", "name"}, {"1", "a"}}

	for _, opts := range []datatable.Options{
		{"skiprows": -1},
		{"header": -2},
		{"header": "-5"},
	} {
		assert.NotPanics(t, func() {
			_, err := Shape(recs, opts)
			assert.ErrorIs(t, err, datatable.ErrInvalidOption, "%v", opts)
		})
	}

	table, err := Shape(recs, datatable.Options{"header": -1})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, table.ColumnNames())
	assert.Equal(t, 2, table.RowCount())
}

func TestColumnNames_KeepsWhitespace(t *testing.T) {
	assert.Equal(t, []string{" name", "id ", "Unnamed: 2"},
		ColumnNames([]string{" name", "id ", "  "}, 3))

	table, err := Shape([][]string{{" name", "id"}, {"a", "1"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{" name", "id"}, table.ColumnNames())
}
