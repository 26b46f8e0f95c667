// Package metadata represents loosely typed bibliographic metadata (CSL-JSON as
// returned by DOI content negotiation) as an explicit tagged union.
//
// Upstream records are treated as adversarial: any field may be absent, null,
// or shaped differently than expected. Every accessor therefore returns either
// an Absent value or an explicit (value, ok) pair and never panics.
package metadata

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"
)

// Kind identifies the shape of a Value.
type Kind int

const (
	Absent Kind = iota // key not present at all
	Null               // explicit JSON null
	String
	Number
	Bool
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Null:
		return "null"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case List:
		return "list"
	case Map:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is one node of a metadata record. The zero Value is Absent.
type Value struct {
	kind   Kind
	text   string // String, Number (original textual form), Bool
	items  []Value
	fields map[string]Value
}

// Parse decodes a JSON document into a Value. Numbers keep their textual
// form so that "12" and "12.0" render exactly as the upstream wrote them.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("decoding metadata: %w", err)
	}
	return FromAny(raw), nil
}

// FromAny converts decoded JSON (or hand-built Go literals) into a Value.
// Unsupported types become Absent.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{kind: Null}
	case Value:
		return t
	case string:
		return Value{kind: String, text: t}
	case json.Number:
		return Value{kind: Number, text: t.String()}
	case float64:
		return Value{kind: Number, text: strconv.FormatFloat(t, 'f', -1, 64)}
	case int:
		return Value{kind: Number, text: strconv.Itoa(t)}
	case int64:
		return Value{kind: Number, text: strconv.FormatInt(t, 10)}
	case bool:
		return Value{kind: Bool, text: strconv.FormatBool(t)}
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromAny(item)
		}
		return Value{kind: List, items: items}
	case []string:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = Value{kind: String, text: item}
		}
		return Value{kind: List, items: items}
	case []map[string]any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromAny(item)
		}
		return Value{kind: List, items: items}
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[k] = FromAny(item)
		}
		return Value{kind: Map, fields: fields}
	default:
		return Value{}
	}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind { return v.kind }

// IsPresent reports whether the value is neither absent nor null.
func (v Value) IsPresent() bool {
	return v.kind != Absent && v.kind != Null
}

// Get returns the named field of a map, or Absent for any other shape.
func (v Value) Get(key string) Value {
	if v.kind != Map {
		return Value{}
	}
	return v.fields[key]
}

// Path resolves a source path such as "container-title" or "event.name".
// A literal key containing dots wins over descending through nested maps.
func (v Value) Path(path string) Value {
	if v.kind != Map {
		return Value{}
	}
	if field, ok := v.fields[path]; ok {
		return field
	}
	if !strings.Contains(path, ".") {
		return Value{}
	}
	cur := v
	for _, part := range strings.Split(path, ".") {
		cur = cur.Get(part)
		if cur.kind == Absent {
			return Value{}
		}
	}
	return cur
}

// Len returns the number of list items or map fields.
func (v Value) Len() int {
	switch v.kind {
	case List:
		return len(v.items)
	case Map:
		return len(v.fields)
	default:
		return 0
	}
}

// Index returns the i-th list item, or Absent when out of range or not a list.
func (v Value) Index(i int) Value {
	if v.kind != List || i < 0 || i >= len(v.items) {
		return Value{}
	}
	return v.items[i]
}

// Items returns a copy of the list items. Non-lists yield nil.
func (v Value) Items() []Value {
	if v.kind != List {
		return nil
	}
	out := make([]Value, len(v.items))
	copy(out, v.items)
	return out
}

// First collapses a list to its first element (Absent if empty).
// Non-list values are returned unchanged.
func (v Value) First() Value {
	if v.kind == List {
		return v.Index(0)
	}
	return v
}

// Scalar returns the textual form of a string, number or bool.
func (v Value) Scalar() (string, bool) {
	switch v.kind {
	case String, Number, Bool:
		return v.text, true
	default:
		return "", false
	}
}

// Text is Scalar without the ok flag; non-scalars render as "".
func (v Value) Text() string {
	s, _ := v.Scalar()
	return s
}

// Truthy mirrors the loose notion of "has a value" used for missing-field
// detection: empty strings, empty containers, zero, false and null are all
// falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case String:
		return v.text != ""
	case Number:
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil {
			return true
		}
		return f != 0
	case Bool:
		return v.text == "true"
	case List:
		return len(v.items) > 0
	case Map:
		return len(v.fields) > 0
	default:
		return false
	}
}
