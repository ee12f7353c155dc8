// Package answer defines the value a student gives to a question and the
// value a question expects: either a single string or a list of strings.
package answer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

type Value struct {
	items []string
	list  bool
}

func String(s string) Value { return Value{items: []string{s}} }

func List(items ...string) Value {
	return Value{items: append([]string{}, items...), list: true}
}

func (v Value) IsList() bool { return v.list }

// Text is the scalar form. Lists return their first element.
func (v Value) Text() string {
	if len(v.items) == 0 {
		return ""
	}
	return v.items[0]
}

func (v Value) Items() []string { return append([]string(nil), v.items...) }

func (v Value) IsZero() bool {
	return len(v.items) == 0 || (!v.list && v.items[0] == "")
}

// Equal is exact equality. Scalars compare as strings; lists compare as sets
// so order and duplicates do not matter.
func (v Value) Equal(o Value) bool {
	if v.list != o.list {
		return false
	}
	if !v.list {
		return v.Text() == o.Text()
	}
	return sameSet(v.items, o.items)
}

func sameSet(a, b []string) bool {
	as, bs := dedupe(a), dedupe(b)
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.list {
		if v.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	}
	return json.Marshal(v.Text())
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*v = Value{}
		return nil
	case b[0] == '[':
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return fmt.Errorf("answer: list must contain strings: %w", err)
		}
		*v = List(items...)
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case bytes.Equal(b, []byte("true")) || bytes.Equal(b, []byte("false")):
		// true/false questions posted as JSON booleans
		*v = String(string(b))
		return nil
	default:
		return fmt.Errorf("answer: expected string or string array, got %s", string(b))
	}
}
