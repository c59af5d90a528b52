package exam

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Answer is either a single value (MCQ option index, NAT literal) or an
// ordered list of option indices (MSQ). The zero value is an empty single
// answer.
type Answer struct {
	multi  bool
	values []string
}

// Single returns a single-valued answer.
func Single(v string) Answer {
	return Answer{values: []string{v}}
}

// Multi returns a multi-valued answer. Order is preserved.
func Multi(vs ...string) Answer {
	out := make([]string, len(vs))
	copy(out, vs)
	return Answer{multi: true, values: out}
}

// ParseMulti splits a comma-separated list into trimmed tokens, dropping
// empty ones.
func ParseMulti(s string) Answer {
	var vals []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			vals = append(vals, tok)
		}
	}
	return Multi(vals...)
}

// IsMulti reports whether the answer is multi-valued.
func (a Answer) IsMulti() bool { return a.multi }

// Value returns the single value, or "" for multi-valued answers.
func (a Answer) Value() string {
	if a.multi || len(a.values) == 0 {
		return ""
	}
	return a.values[0]
}

// Values returns a copy of the values in order.
func (a Answer) Values() []string {
	out := make([]string, len(a.values))
	copy(out, a.values)
	return out
}

// IsEmpty reports whether nothing was answered.
func (a Answer) IsEmpty() bool {
	if a.multi {
		return len(a.values) == 0
	}
	return a.Value() == ""
}

// Contains reports whether v is one of the answer's values.
func (a Answer) Contains(v string) bool {
	for _, x := range a.values {
		if x == v {
			return true
		}
	}
	return false
}

// Key is the canonical serialized form used for equality. A single "0" and
// a multi ["0"] have different keys, and multi answers compare in order.
func (a Answer) Key() string {
	b, _ := a.MarshalJSON()
	return string(b)
}

// Equal reports literal equality of the serialized forms.
func (a Answer) Equal(b Answer) bool {
	return a.Key() == b.Key()
}

// String renders the answer for display.
func (a Answer) String() string {
	if a.multi {
		return strings.Join(a.values, ", ")
	}
	return a.Value()
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.multi {
		vals := a.values
		if vals == nil {
			vals = []string{}
		}
		return json.Marshal(vals)
	}
	return json.Marshal(a.Value())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}
	switch data[0] {
	case '[':
		var vals []string
		if err := json.Unmarshal(data, &vals); err != nil {
			return fmt.Errorf("decode multi answer: %w", err)
		}
		*a = Multi(vals...)
		return nil
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("decode answer: %w", err)
		}
		*a = Single(v)
		return nil
	default:
		// Bare numbers are accepted for NAT answers.
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decode answer: %w", err)
		}
		*a = Single(n.String())
		return nil
	}
}
