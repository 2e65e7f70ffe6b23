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
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Options are caller-supplied settings forwarded verbatim to a parser or
// query routine. The adapter never reads them; the typed accessors below
// exist for the parsers on the other side of that boundary.
type Options map[string]interface{}

// Has reports whether key is set to a non-nil value.
func (o Options) Has(key string) bool {
	v, ok := o[key]
	return ok && v != nil
}

// Clone returns a shallow copy.
func (o Options) Clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// WithDefault returns a copy of o with key set to value unless it is
// already present.
func (o Options) WithDefault(key string, value interface{}) Options {
	out := o.Clone()
	if !out.Has(key) {
		out[key] = value
	}
	return out
}

// String returns the option as a string, or def when unset.
func (o Options) String(key, def string) (string, error) {
	if !o.Has(key) {
		return def, nil
	}
	s, err := cast.ToStringE(o[key])
	if err != nil {
		return "", invalidOption(key, err)
	}
	return s, nil
}

// Int returns the option as an int, or def when unset.
func (o Options) Int(key string, def int) (int, error) {
	if !o.Has(key) {
		return def, nil
	}
	i, err := cast.ToIntE(o[key])
	if err != nil {
		return 0, invalidOption(key, err)
	}
	return i, nil
}

// Bool returns the option as a bool, or def when unset.
func (o Options) Bool(key string, def bool) (bool, error) {
	if !o.Has(key) {
		return def, nil
	}
	b, err := cast.ToBoolE(o[key])
	if err != nil {
		return false, invalidOption(key, err)
	}
	return b, nil
}

// Strings returns the option as a string slice. A single string is split
// on commas.
func (o Options) Strings(key string) ([]string, error) {
	if !o.Has(key) {
		return nil, nil
	}
	if s, ok := o[key].(string); ok {
		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	}
	out, err := cast.ToStringSliceE(o[key])
	if err != nil {
		return nil, invalidOption(key, err)
	}
	return out, nil
}

// Slice returns the option as a slice of values, wrapping a scalar.
func (o Options) Slice(key string) []interface{} {
	if !o.Has(key) {
		return nil
	}
	if s, err := cast.ToSliceE(o[key]); err == nil {
		return s
	}
	return []interface{}{o[key]}
}

// Rune returns the first rune of a string option, or def when unset.
// Escapes such as "\t" are accepted.
func (o Options) Rune(key string, def rune) (rune, error) {
	s, err := o.String(key, "")
	if err != nil {
		return 0, err
	}
	switch s {
	case "":
		return def, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, invalidOption(key, fmt.Errorf("expected a single character, got %q", s))
	}
	return r[0], nil
}

func invalidOption(key string, err error) error {
	return fmt.Errorf("%w %q: %v", ErrInvalidOption, key, err)
}
