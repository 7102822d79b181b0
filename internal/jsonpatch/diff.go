// Package jsonpatch computes RFC 6902 patches between two JSON documents.
package jsonpatch

import (
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Op is one patch operation
type Op struct {
	Op    string
	Path  string
	Value any
}

// MarshalJSON keeps an explicit null value on add/replace and omits it on remove
func (o Op) MarshalJSON() ([]byte, error) {
	if o.Op == "remove" {
		return json.Marshal(struct {
			Op   string `json:"op"`
			Path string `json:"path"`
		}{o.Op, o.Path})
	}
	return json.Marshal(struct {
		Op    string `json:"op"`
		Path  string `json:"path"`
		Value any    `json:"value"`
	}{o.Op, o.Path, o.Value})
}

// Between marshals a and b and diffs the resulting documents
func Between(a, b any) ([]Op, error) {
	da, err := toDocument(a)
	if err != nil {
		return nil, err
	}
	db, err := toDocument(b)
	if err != nil {
		return nil, err
	}
	return Diff(da, db, ""), nil
}

// Marshal renders ops, always as an array
func Marshal(ops []Op) (json.RawMessage, error) {
	if len(ops) == 0 {
		return json.RawMessage("[]"), nil
	}
	return json.Marshal(ops)
}

func toDocument(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Diff returns the ops turning a into b. Both must be decoded JSON
// (maps, slices, strings, float64, bool, nil); path is "" for the root.
// Object keys are visited in sorted order so output is stable.
func Diff(a, b any, path string) []Op {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []Op{{Op: "replace", Path: path, Value: b}}
	}

	switch av := a.(type) {
	case map[string]any:
		if bv, ok := b.(map[string]any); ok {
			return diffObjects(av, bv, path)
		}
	case []any:
		if bv, ok := b.([]any); ok {
			return diffArrays(av, bv, path)
		}
	default:
		if isScalar(b) && a == b {
			return nil
		}
	}
	return []Op{{Op: "replace", Path: path, Value: b}}
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	}
	return true
}

func diffObjects(a, b map[string]any, path string) []Op {
	var ops []Op
	for _, k := range sortedKeys(a) {
		if _, ok := b[k]; !ok {
			ops = append(ops, Op{Op: "remove", Path: path + "/" + escapeKey(k)})
		}
	}
	for _, k := range sortedKeys(b) {
		child := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			ops = append(ops, Op{Op: "add", Path: child, Value: b[k]})
			continue
		}
		ops = append(ops, Diff(av, b[k], child)...)
	}
	return ops
}

// Shared prefix is diffed in place, then the tail is trimmed back to front
// or extended front to back so indices stay valid while applying.
func diffArrays(a, b []any, path string) []Op {
	var ops []Op
	common := min(len(a), len(b))
	for i := 0; i < common; i++ {
		ops = append(ops, Diff(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}
	for i := len(a) - 1; i >= common; i-- {
		ops = append(ops, Op{Op: "remove", Path: path + "/" + strconv.Itoa(i)})
	}
	for i := common; i < len(b); i++ {
		ops = append(ops, Op{Op: "add", Path: path + "/" + strconv.Itoa(i), Value: b[i]})
	}
	return ops
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// escapeKey escapes a JSON Pointer token per RFC 6901
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
