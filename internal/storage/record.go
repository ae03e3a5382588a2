package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is a single row keyed by column name. Values read back from a
// repository are normalized by column kind: text as string, integers as
// int64, reals as float64, booleans as bool and JSON as json.RawMessage.
// NULL is nil.
type Record map[string]any

// String returns the value at key as a string, or "" when absent or NULL.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.RawMessage:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// StringPtr returns nil for a NULL or absent value.
func (r Record) StringPtr(key string) *string {
	if r[key] == nil {
		return nil
	}
	s := r.String(key)
	return &s
}

func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// Decode unmarshals a JSON column into v. NULL or absent values leave v untouched.
func (r Record) Decode(key string, v any) error {
	var raw []byte
	switch val := r[key].(type) {
	case nil:
		return nil
	case json.RawMessage:
		raw = val
	case []byte:
		raw = val
	case string:
		raw = []byte(val)
	default:
		// Not yet encoded, e.g. a record built in memory before Insert.
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		raw = b
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}
