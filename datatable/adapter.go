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
	"context"

	"github.com/sirupsen/logrus"

	"github.com/magpierre/simpledt/internal/logging"
)

// Adapter holds the display projection of one table source.
//
// DataColumns, DataRows and DataTable are set together, exactly once.
// An adapter built by New is always rendered. Adapters that defer the
// choice of query (see the sql adapter) start unrendered; callers check
// Rendered before reading the fields.
type Adapter struct {
	DataColumns []DisplayColumn
	DataRows    []DisplayRow
	DataTable   *RenderedTable
}

// New fetches the table from the loader and renders it.
// On failure no adapter is returned.
func New(ctx context.Context, loader Loader) (*Adapter, error) {
	a := &Adapter{}
	if err := a.Load(ctx, loader); err != nil {
		return nil, err
	}
	return a, nil
}

// Load fetches the table from the loader and renders it into a.
// It returns ErrAlreadyRendered if a has already been rendered.
func (a *Adapter) Load(ctx context.Context, loader Loader) error {
	if a.Rendered() {
		return ErrAlreadyRendered
	}

	t, err := loader.FetchTable(ctx)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrNoDataSource
	}

	rendered := Render(t)
	a.DataColumns = rendered.Columns
	a.DataRows = rendered.Rows
	a.DataTable = rendered

	logging.WithComponent("datatable").WithFields(logrus.Fields{
		"columns": len(rendered.Columns),
		"rows":    len(rendered.Rows),
		"source":  t.Metadata()["source"],
	}).Debug("rendered table")

	return nil
}

// Rendered reports whether the display fields have been set.
func (a *Adapter) Rendered() bool {
	return a != nil && a.DataTable != nil
}
