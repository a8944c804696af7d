package graphql

import (
	"encoding/json"
	"strings"
)

// Lookup walks a dotted path below `data`, e.g. "albums.meta.totalCount".
// It returns false when any segment is missing or not an object.
func (r *Response) Lookup(path string) (any, bool) {
	if r == nil || path == "" {
		return nil, false
	}

	root, rest, _ := strings.Cut(path, ".")
	raw, ok := r.Data[root]
	if !ok {
		return nil, false
	}

	var current any
	if err := json.Unmarshal(raw, &current); err != nil {
		return nil, false
	}
	if rest == "" {
		return current, true
	}
	return extractField(current, rest)
}

// LookupInt is Lookup for numeric values. Missing, null and non-numeric
// values yield 0, false.
func (r *Response) LookupInt(path string) (int, bool) {
	v, ok := r.Lookup(path)
	if !ok {
		return 0, false
	}
	n, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(n), true
}

func extractField(data any, path string) (any, bool) {
	current := data
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
