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

// Package deltasharing loads one data file of a Delta Sharing table into a datatable.
package deltasharing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	delta_sharing "github.com/magpierre/go_delta_sharing_client"

	arrowadapter "github.com/magpierre/simpledt/adapters/arrow"
	"github.com/magpierre/simpledt/datatable"
)

// ErrNoFiles is returned when the table lists no data files.
var ErrNoFiles = errors.New("table has no data files")

// Config describes a Delta Sharing table.
type Config struct {
	// Profile is the profile file content. ProfilePath is read when
	// Profile is empty.
	Profile     string
	ProfilePath string

	Share  string
	Schema string
	Table  string

	// FileID selects the data file; the first listed file is used when empty.
	FileID string

	// Options recognized keys:
	//
	//	timeout  seconds allowed for each sharing server call (default 60)
	Options datatable.Options
}

// Loader fetches a Delta Sharing table file.
type Loader struct {
	Config Config
}

// New loads a Delta Sharing table file and renders it.
func New(ctx context.Context, cfg Config) (*datatable.Adapter, error) {
	return datatable.New(ctx, &Loader{Config: cfg})
}

// FetchTable implements datatable.Loader.
func (l *Loader) FetchTable(ctx context.Context) (*datatable.Table, error) {
	cfg := l.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	name := strings.Join([]string{cfg.Share, cfg.Schema, cfg.Table}, ".")

	t, err := l.fetch(ctx)
	if err != nil {
		return nil, &datatable.SourceError{Op: "load Delta Sharing table", Source: name, Err: err}
	}
	t.SetMetadata("source", name)
	return t, nil
}

func (l *Loader) fetch(ctx context.Context) (*datatable.Table, error) {
	cfg := l.Config

	profile, err := cfg.profile()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.Options.Int("timeout", 0)
	if err != nil {
		return nil, err
	}

	client, err := delta_sharing.NewSharingClientFromString(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create Delta Sharing client: %w", err)
	}

	table := delta_sharing.Table{Name: cfg.Table, Share: cfg.Share, Schema: cfg.Schema}

	fileID := cfg.FileID
	if fileID == "" {
		listCtx, cancel := timeoutContext(ctx, timeout)
		defer cancel()
		resp, err := client.ListFilesInTable(listCtx, table)
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}
		if len(resp.AddFiles) == 0 {
			return nil, ErrNoFiles
		}
		fileID = resp.AddFiles[0].Id
	}

	loadCtx, cancel := timeoutContext(ctx, timeout)
	defer cancel()
	arrowTable, err := delta_sharing.LoadArrowTable(loadCtx, client, table, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load file %s: %w", fileID, err)
	}
	defer arrowTable.Release()

	return arrowadapter.FromArrowTable(arrowTable)
}

// Validate checks that a profile and a fully qualified table are given.
func (c Config) Validate() error {
	if c.Profile == "" && c.ProfilePath == "" {
		return &datatable.ConfigurationError{Field: "profile", Err: errors.New("profile or profile path required")}
	}
	if c.Share == "" || c.Schema == "" || c.Table == "" {
		return &datatable.ConfigurationError{Field: "table", Err: errors.New("share, schema and table required")}
	}
	return nil
}

func (c Config) profile() (string, error) {
	if c.Profile != "" {
		return c.Profile, nil
	}
	b, err := os.ReadFile(c.ProfilePath)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// timeoutContext bounds a sharing server call.
// timeoutSeconds <= 0 selects the 60 second default.
func timeoutContext(parent context.Context, timeoutSeconds int) (context.Context, context.CancelFunc) {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 60
	}
	return context.WithTimeout(parent, time.Duration(timeoutSeconds)*time.Second)
}
