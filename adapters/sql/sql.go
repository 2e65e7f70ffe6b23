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

// Package sql loads a database table or query result into a datatable.
package sql

import (
	"context"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/magpierre/simpledt/datatable"
	"github.com/magpierre/simpledt/internal/logging"
)

// Table is a relational source with its display projection.
//
// The connection is held for the lifetime of the Table so a query can be
// chosen after construction. The embedded Adapter is unrendered until a
// table or statement is known.
type Table struct {
	*datatable.Adapter

	cfg Config
	db  *sqlx.DB
}

// New validates cfg, opens the connection and, when cfg names a table or
// a statement, fetches and renders it.
func New(ctx context.Context, cfg Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	driver, _ := cfg.Engine.driverName()

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, &datatable.SourceError{Op: "open database", Source: cfg.Database, Err: err}
	}

	logging.WithComponent("sql").WithFields(logrus.Fields{
		"engine":   cfg.Engine,
		"database": cfg.Database,
		"host":     cfg.Host,
	}).Debug("opened database")

	t := &Table{Adapter: &datatable.Adapter{}, cfg: cfg, db: db}

	switch {
	case cfg.Table != "":
		err = t.ReadTable(ctx, cfg.Table)
	case cfg.Statement != "":
		err = t.Query(ctx, cfg.Statement)
	}
	if err != nil {
		db.Close()
		return nil, err
	}
	return t, nil
}

// ReadTable fetches every row of the named table and renders it.
func (t *Table) ReadTable(ctx context.Context, name string) error {
	query, err := t.selectTable(name)
	if err != nil {
		return err
	}
	return t.Adapter.Load(ctx, t.loader(name, query))
}

// Query executes statement and renders its result set. Bind arguments
// come from args, or from the params option when args is empty.
func (t *Table) Query(ctx context.Context, statement string, args ...interface{}) error {
	if len(args) == 0 {
		args = t.cfg.Options.Slice("params")
	}
	return t.Adapter.Load(ctx, t.loader("", statement, args...))
}

// DB returns the underlying connection.
func (t *Table) DB() *sqlx.DB {
	return t.db
}

// Close releases the connection.
func (t *Table) Close() error {
	return t.db.Close()
}

func (t *Table) selectTable(name string) (string, error) {
	columns, err := t.cfg.Options.Strings("columns")
	if err != nil {
		return "", err
	}
	schema, err := t.cfg.Options.String("schema", "")
	if err != nil {
		return "", err
	}

	projection := "*"
	if len(columns) > 0 {
		quoted := make([]string, len(columns))
		for i, c := range columns {
			quoted[i] = t.cfg.quoteIdent(c)
		}
		projection = strings.Join(quoted, ", ")
	}

	from := t.cfg.quoteIdent(name)
	if schema != "" {
		from = t.cfg.quoteIdent(schema) + "." + from
	}
	return "SELECT " + projection + " FROM " + from, nil
}

func (t *Table) loader(table, query string, args ...interface{}) datatable.Loader {
	return datatable.LoaderFunc(func(ctx context.Context) (*datatable.Table, error) {
		op, src := "run query on", t.cfg.Database
		if table != "" {
			op, src = "read table", table
		}

		result, err := FetchRows(ctx, t.db, query, args...)
		if err != nil {
			return nil, &datatable.SourceError{Op: op, Source: src, Err: err}
		}
		result.SetMetadata("source", src)
		result.SetMetadata("engine", string(t.cfg.Engine))
		return result, nil
	})
}

// FetchRows runs query and collects the full result set into a Table.
// Raw []byte values are read as strings.
func FetchRows(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (*datatable.Table, error) {
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var values [][]interface{}
	for rows.Next() {
		row, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		for i, v := range row {
			if b, ok := v.([]byte); ok {
				row[i] = string(b)
			}
		}
		values = append(values, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return datatable.NewTableFromValues(columns, values)
}
