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
	"errors"
	"fmt"
)

// Common errors returned by the datatable package.
var (
	// ErrInvalidColumn is returned when a column index is out of range.
	ErrInvalidColumn = errors.New("invalid column index")

	// ErrInvalidRow is returned when a row index is out of range.
	ErrInvalidRow = errors.New("invalid row index")

	// ErrNoDataSource is returned when a required data source is nil.
	ErrNoDataSource = errors.New("data source is nil")

	// ErrRowWidth is returned when a row does not have one value per column.
	ErrRowWidth = errors.New("row width does not match column count")

	// ErrAlreadyRendered is returned when an adapter is loaded twice.
	ErrAlreadyRendered = errors.New("table already rendered")

	// ErrInvalidOption is returned by parsers for an option they cannot use.
	ErrInvalidOption = errors.New("invalid option")

	// ErrUnsupportedFormat is returned when a file format cannot be determined.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrUnsupportedEngine is returned for an engine kind outside sqlite, mysql and postgresql.
	ErrUnsupportedEngine = errors.New("unsupported engine")

	// ErrConflictingParameters is returned when mutually exclusive parameters are both set.
	ErrConflictingParameters = errors.New("conflicting parameters")
)

// ConfigurationError reports an invalid adapter configuration.
// It is raised before any source is read.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// SourceError wraps a failure from a parser or database driver.
// The underlying error is kept as is and reachable through errors.Is/As.
type SourceError struct {
	Op     string
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }
