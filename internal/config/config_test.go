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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/simpledt/datatable"
)

func TestParse(t *testing.T) {
	t.Setenv("SIMPLEDT_TEST_PASSWORD", "s3cret")

	cfg, err := Parse([]byte(`
logging:
  level: debug
  format: json
sources:
  orders:
    type: sql
    engine: postgresql
    host: db.local
    port: 5432
    database: shop
    user: reader
    password: ${SIMPLEDT_TEST_PASSWORD}
    table: orders
  sales:
    path: data/sales.csv
    options:
      sep: ";"
      nrows: 10
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, []string{"orders", "sales"}, cfg.SourceNames())

	orders, ok := cfg.Lookup("orders")
	require.True(t, ok)
	assert.Equal(t, TypeSQL, orders.Type)
	assert.Equal(t, "s3cret", orders.Password)
	assert.Equal(t, 5432, orders.Port)

	sales, ok := cfg.Lookup("sales")
	require.True(t, ok)
	assert.Equal(t, TypeGeneric, sales.Type)
	assert.Equal(t, ";", sales.Options["sep"])
	assert.Equal(t, 10, sales.Options["nrows"])

	_, ok = cfg.Lookup("missing")
	assert.False(t, ok)
}

func TestParse_CredentialsKeptVerbatim(t *testing.T) {
	t.Setenv("SIMPLEDT_TEST_PASSWORD", "abc #1: x")
	t.Setenv("SIMPLEDT_TEST_HOST", "db.internal")

	cfg, err := Parse([]byte(`
sources:
  literal:
    type: sql
    engine: mysql
    database: shop
    user: $admin
    password: pa$sword
  expanded:
    type: sql
    engine: mysql
    database: shop
    host: ${SIMPLEDT_TEST_HOST}
    password: ${SIMPLEDT_TEST_PASSWORD}
    statement: SELECT * FROM t WHERE id = $1
`))
	require.NoError(t, err)

	literal, ok := cfg.Lookup("literal")
	require.True(t, ok)
	assert.Equal(t, "$admin", literal.User)
	assert.Equal(t, "pa$sword", literal.Password)

	expanded, ok := cfg.Lookup("expanded")
	require.True(t, ok)
	assert.Equal(t, "abc #1: x", expanded.Password)
	assert.Equal(t, "db.internal", expanded.Host)
	assert.Equal(t, "SELECT * FROM t WHERE id = $1", expanded.Statement)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("SIMPLEDT_TEST_USER", "reader")
	os.Unsetenv("SIMPLEDT_TEST_UNSET")

	assert.Equal(t, "reader@host", expandEnv("${SIMPLEDT_TEST_USER}@host"))
	assert.Equal(t, "x", expandEnv("x${SIMPLEDT_TEST_UNSET}"))
	assert.Equal(t, "$SIMPLEDT_TEST_USER", expandEnv("$SIMPLEDT_TEST_USER"))
	assert.Equal(t, "a$", expandEnv("a$"))
	assert.Equal(t, "${not closed", expandEnv("${not closed"))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("sources:\n  a:\n    type: csv\n  b:\n    type: nosql\n    path: x\n"))
	require.Error(t, err)

	var cfgErr *datatable.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), `source "a": path is required`)
	assert.Contains(t, err.Error(), `source "b": unknown type "nosql"`)

	_, err = Parse([]byte("sources: [unclosed"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simpledt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources:\n  f:\n    type: json\n    path: x.json\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"f"}, cfg.SourceNames())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSourceOpen_CSVWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("a|b\n1|x\n2|y\n3|z\n"), 0o644))

	src := &Source{Type: TypeCSV, Path: path, Options: datatable.Options{"sep": "|"}}
	adapter, err := src.Open(context.Background(), datatable.Options{"nrows": 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, adapter.DataTable.ColumnNames())
	assert.Len(t, adapter.DataRows, 2)
	// configured options are not modified by overrides
	assert.NotContains(t, src.Options, "nrows")
}

func TestSourceOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	createSQLite(t, path)

	src := &Source{Type: TypeSQL, Engine: "sqlite", Database: path, Table: "items"}
	adapter, err := src.Open(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "label"}, adapter.DataTable.ColumnNames())
	assert.Len(t, adapter.DataRows, 2)

	deferred := &Source{Type: TypeSQL, Engine: "sqlite", Database: path}
	_, err = deferred.Open(context.Background(), nil)
	assert.ErrorIs(t, err, datatable.ErrNoDataSource)
}

func TestSourceOpen_InvalidSource(t *testing.T) {
	_, err := (&Source{Type: TypeExcel}).Open(context.Background(), nil)
	var cfgErr *datatable.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
