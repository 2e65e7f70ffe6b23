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

package json

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Velocidex/ordereddict"
	gojson "github.com/goccy/go-json"
)

// decode reads one JSON value. Objects at any depth become
// *ordereddict.Dict with keys in document order, and numbers become
// uint64, int64 or float64.
func decode(r io.Reader) (interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeBytes(data)
}

func decodeBytes(data []byte) (interface{}, error) {
	data = bytes.TrimSpace(data)
	if !gojson.Valid(data) {
		var v interface{}
		if err := gojson.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return nil, errors.New("invalid JSON document")
	}

	// Wrapping the document in an object lets arrays and scalars at the
	// top level go through the same conversion as object members.
	wrapped := make([]byte, 0, len(data)+6)
	wrapped = append(wrapped, `{"v":`...)
	wrapped = append(wrapped, data...)
	wrapped = append(wrapped, '}')

	item := ordereddict.NewDict()
	if err := item.UnmarshalJSON(wrapped); err != nil {
		return nil, err
	}
	v, _ := item.Get("v")
	return v, nil
}

// decodeLines reads one JSON value per non-blank line.
func decodeLines(r *bufio.Reader) (interface{}, error) {
	var items []interface{}
	line := 0
	for {
		text, err := r.ReadBytes('\n')
		if len(bytes.TrimSpace(text)) > 0 {
			line++
			v, derr := decodeBytes(text)
			if derr != nil {
				return nil, fmt.Errorf("line %d: %w", line, derr)
			}
			items = append(items, v)
		}
		if err == io.EOF {
			return items, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
