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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Accessors(t *testing.T) {
	opts := Options{
		"sep":     ";",
		"tab":     `\t`,
		"n":       "12",
		"flag":    "true",
		"names":   "a, b,c",
		"list":    []interface{}{"x", "y"},
		"params":  5,
		"nothing": nil,
	}

	s, err := opts.String("sep", ",")
	require.NoError(t, err)
	assert.Equal(t, ";", s)

	s, err = opts.String("missing", ",")
	require.NoError(t, err)
	assert.Equal(t, ",", s)

	r, err := opts.Rune("tab", ',')
	require.NoError(t, err)
	assert.Equal(t, '\t', r)

	n, err := opts.Int("n", 0)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	b, err := opts.Bool("flag", false)
	require.NoError(t, err)
	assert.True(t, b)

	names, err := opts.Strings("names")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)

	list, err := opts.Strings("list")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, list)

	assert.Equal(t, []interface{}{5}, opts.Slice("params"))
	assert.False(t, opts.Has("nothing"))
}

func TestOptions_Invalid(t *testing.T) {
	opts := Options{"n": "abc", "sep": ";;"}

	_, err := opts.Int("n", 0)
	assert.ErrorIs(t, err, ErrInvalidOption)

	_, err = opts.Rune("sep", ',')
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestOptions_WithDefaultDoesNotModify(t *testing.T) {
	opts := Options{"a": 1}
	out := opts.WithDefault("b", 2).WithDefault("a", 3)

	assert.Equal(t, Options{"a": 1}, opts)
	assert.Equal(t, Options{"a": 1, "b": 2}, out)

	var none Options
	assert.Equal(t, Options{"k": "v"}, none.WithDefault("k", "v"))
}
