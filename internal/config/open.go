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
	"fmt"
	"strconv"

	arrowadapter "github.com/magpierre/simpledt/adapters/arrow"
	csvadapter "github.com/magpierre/simpledt/adapters/csv"
	"github.com/magpierre/simpledt/adapters/deltasharing"
	exceladapter "github.com/magpierre/simpledt/adapters/excel"
	"github.com/magpierre/simpledt/adapters/generic"
	jsonadapter "github.com/magpierre/simpledt/adapters/json"
	sqladapter "github.com/magpierre/simpledt/adapters/sql"
	"github.com/magpierre/simpledt/datatable"
)

// Open loads the source and renders it. extra options override the
// configured ones.
//
// A relational source is read once and its connection closed; a source
// naming neither table nor statement cannot be rendered and is an error.
func (s *Source) Open(ctx context.Context, extra datatable.Options) (*datatable.Adapter, error) {
	if err := s.Validate(); err != nil {
		return nil, &datatable.ConfigurationError{Field: "source", Err: err}
	}
	opts := merge(s.Options, extra)

	switch s.Type {
	case TypeCSV:
		return csvadapter.New(ctx, s.Path, opts)
	case TypeExcel:
		return exceladapter.New(ctx, s.Path, opts)
	case TypeJSON:
		return jsonadapter.New(ctx, s.Path, opts)
	case TypeParquet:
		return arrowadapter.NewParquet(ctx, s.Path, opts)
	case TypeSQL:
		return s.openSQL(ctx, opts)
	case TypeDeltaSharing:
		return deltasharing.New(ctx, deltasharing.Config{
			Profile:     s.Profile,
			ProfilePath: s.ProfilePath,
			Share:       s.Share,
			Schema:      s.Schema,
			Table:       s.Table,
			FileID:      s.FileID,
			Options:     opts,
		})
	default:
		return generic.New(ctx, s.Path, opts)
	}
}

func (s *Source) openSQL(ctx context.Context, opts datatable.Options) (*datatable.Adapter, error) {
	t, err := sqladapter.New(ctx, sqladapter.Config{
		Engine:    sqladapter.ParseEngine(s.Engine),
		Database:  s.Database,
		Table:     s.Table,
		Statement: s.Statement,
		User:      s.User,
		Password:  s.Password,
		Host:      s.Host,
		Port:      port(s.Port),
		Options:   opts,
	})
	if err != nil {
		return nil, err
	}
	defer t.Close()

	if !t.Rendered() {
		return nil, &datatable.ConfigurationError{
			Field: "table",
			Err:   fmt.Errorf("%w: table or statement required", datatable.ErrNoDataSource),
		}
	}
	return t.Adapter, nil
}

// OpenLocation renders a file path or URL through the generic adapter.
func OpenLocation(ctx context.Context, location string, opts datatable.Options) (*datatable.Adapter, error) {
	return generic.New(ctx, location, opts)
}

func port(p int) string {
	if p <= 0 {
		return ""
	}
	return strconv.Itoa(p)
}

func merge(base, extra datatable.Options) datatable.Options {
	out := base.Clone()
	for k, v := range extra {
		out[k] = v
	}
	return out
}
