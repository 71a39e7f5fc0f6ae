package domain

import (
	"encoding/json"
	"maps"
	"strconv"
	"strings"
)

// Description is the abstract key-value form every scene entity and action
// serializes to. Values are JSON-compatible (numbers, strings, bools, lists, maps).
type Description map[string]any

// Clone returns a deep copy of nested maps and lists.
func (d Description) Clone() Description {
	if d == nil {
		return nil
	}
	out := make(Description, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Description:
		return t.Clone()
	case map[string]any:
		return map[string]any(Description(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []int:
		return append([]int(nil), t...)
	}
	return v
}

// Without returns a shallow copy with the given keys removed.
func (d Description) Without(keys ...string) Description {
	out := maps.Clone(d)
	if out == nil {
		out = Description{}
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Fill copies every key of src that is missing from d.
func (d Description) Fill(src Description) {
	for k, v := range src {
		if _, ok := d[k]; !ok {
			d[k] = cloneValue(v)
		}
	}
}

// Has reports whether the key is present.
func (d Description) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// String returns the value for key when it is a string.
func (d Description) String(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// Int returns the value for key converted to int.
func (d Description) Int(key string) (int, bool) {
	return toInt(d[key])
}

// Bool returns the value for key when it is a bool.
func (d Description) Bool(key string) (bool, bool) {
	b, ok := d[key].(bool)
	return b, ok
}

// Map returns the value for key as a Description.
func (d Description) Map(key string) (Description, bool) {
	return AsDescription(d[key])
}

// List returns the value for key as a list of descriptions. Entries that are
// not maps are skipped.
func (d Description) List(key string) ([]Description, bool) {
	raw, ok := d[key]
	if !ok {
		return nil, false
	}
	var items []any
	switch t := raw.(type) {
	case []any:
		items = t
	case []Description:
		return t, true
	case []map[string]any:
		out := make([]Description, len(t))
		for i, m := range t {
			out[i] = Description(m)
		}
		return out, true
	default:
		return nil, false
	}
	out := make([]Description, 0, len(items))
	for _, it := range items {
		if m, ok := AsDescription(it); ok {
			out = append(out, m)
		}
	}
	return out, true
}

// Kind returns the "type" entry as a Kind.
func (d Description) Kind() Kind {
	s, _ := d.String("type")
	return Kind(s)
}

// Name returns the "name" entry.
func (d Description) Name() string {
	s, _ := d.String("name")
	return s
}

// AsDescription converts map-shaped values produced by JSON or YAML decoders.
func AsDescription(v any) (Description, bool) {
	switch t := v.(type) {
	case Description:
		return t, true
	case map[string]any:
		return Description(t), true
	case map[any]any:
		out := make(Description, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = e
		}
		return out, true
	}
	return nil, false
}

// Size is a width or height value that is either absolute or a percentage
// of the parent's content size.
type Size struct {
	Value   int
	Percent bool
}

// Encode returns the description form: an int, or "N%" when percent based.
func (s Size) Encode() any {
	if s.Percent {
		return strconv.Itoa(s.Value) + "%"
	}
	return s.Value
}

// ParseSize decodes the description form produced by Size.Encode.
func ParseSize(v any) (Size, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if p, found := strings.CutSuffix(s, "%"); found {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return Size{}, false
			}
			return Size{Value: n, Percent: true}, true
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return Size{}, false
		}
		return Size{Value: n}, true
	}
	n, ok := toInt(v)
	if !ok {
		return Size{}, false
	}
	return Size{Value: n}, true
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case float32:
		return int(t), true
	case float64:
		return int(t), true
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			f, ferr := t.Float64()
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return int(n), true
	}
	return 0, false
}
