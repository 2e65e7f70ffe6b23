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
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// number matches json.Number and the goccy/go-json equivalent.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

// Normalize converts a raw Go value into one of the canonical raw types:
// int64, float64, bool, string, time.Time, []byte, or a nested value.
func Normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case nil:
		return nil
	case int64, float64, bool, string, time.Time, []byte:
		return x
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return uintValue(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return uintValue(x)
	case float32:
		return float64(x)
	case number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	}
	return v
}

func uintValue(u uint64) interface{} {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

// kindOf returns the DataType of a single normalized value.
func kindOf(v interface{}) DataType {
	switch v.(type) {
	case int64:
		return TypeInt
	case float64:
		return TypeFloat
	case bool:
		return TypeBool
	case string:
		return TypeString
	case time.Time:
		return TypeTimestamp
	case []byte:
		return TypeBinary
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return TypeStruct
	case reflect.Slice, reflect.Array:
		return TypeList
	}
	return TypeString
}

// InferType returns the column type for normalized values.
// Null values are ignored; a column of only nulls is a string column.
// Int and float values together make a float column, any other mix a
// string column.
func InferType(values []interface{}) DataType {
	seen := false
	result := TypeString
	for _, v := range values {
		if v == nil {
			continue
		}
		k := kindOf(v)
		if !seen {
			result, seen = k, true
			continue
		}
		if k == result {
			continue
		}
		if (k == TypeInt && result == TypeFloat) || (k == TypeFloat && result == TypeInt) {
			result = TypeFloat
			continue
		}
		return TypeString
	}
	return result
}

// coerce converts a normalized value to the column type.
func coerce(v interface{}, dataType DataType) interface{} {
	if v == nil {
		return nil
	}
	switch dataType {
	case TypeFloat:
		if i, ok := v.(int64); ok {
			return float64(i)
		}
	case TypeString:
		if _, ok := v.(string); !ok {
			return formatValue(v, kindOf(v))
		}
	}
	return v
}

// ParseColumn infers a column type from text cells, the way delimited
// text and spreadsheet readers see them, and returns the typed values.
// Cells for which isNull returns true become null values.
func ParseColumn(cells []string, isNull func(string) bool) (DataType, []Value) {
	raw := make([]interface{}, len(cells))
	for i, s := range cells {
		if isNull != nil && isNull(s) {
			continue
		}
		raw[i] = s
	}

	dataType := TypeString
	for _, candidate := range []DataType{TypeInt, TypeFloat, TypeBool} {
		if parsed, ok := parseAll(raw, candidate); ok {
			raw, dataType = parsed, candidate
			break
		}
	}

	values := make([]Value, len(cells))
	for i, v := range raw {
		values[i] = NewValue(v, dataType)
	}
	return dataType, values
}

// parseAll parses every non-null string as dataType. It fails if any cell
// does not parse or if there is no non-null cell at all.
func parseAll(raw []interface{}, dataType DataType) ([]interface{}, bool) {
	out := make([]interface{}, len(raw))
	found := false
	for i, v := range raw {
		if v == nil {
			continue
		}
		s := strings.TrimSpace(v.(string))
		var (
			parsed interface{}
			err    error
		)
		switch dataType {
		case TypeInt:
			parsed, err = strconv.ParseInt(s, 10, 64)
		case TypeFloat:
			parsed, err = strconv.ParseFloat(s, 64)
		case TypeBool:
			parsed, err = parseBool(s)
		}
		if err != nil {
			return nil, false
		}
		out[i] = parsed
		found = true
	}
	return out, found
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	}
	return false, strconv.ErrSyntax
}
