package rules

import (
	"fmt"
	"strings"
)

// SplitPath splits a dot-path like "data.spec_id" into its segments,
// dropping empty segments.
func SplitPath(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("key path must be non-empty, e.g. %q or %q", "action", "data.spec_id")
	}
	var out []string
	for _, seg := range strings.Split(path, ".") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("key path must be non-empty, e.g. %q or %q", "action", "data.spec_id")
	}
	return out, nil
}

// GetByPath walks a dot-path through nested maps. Returns nil when any
// segment is missing or a non-map is hit along the way.
func GetByPath(obj any, path []string) any {
	cur := obj
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[key]
		if !ok {
			return nil
		}
	}
	return cur
}

// SetByPath writes a value at a dot-path, creating intermediate maps
// where a segment is missing or not a map.
func SetByPath(obj map[string]any, path []string, value any) {
	cur := obj
	for _, key := range path[:len(path)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}
