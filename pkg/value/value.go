// Package value models the dynamically typed values returned by a Cypher
// query engine as a closed tagged union.
//
// Every cell of every record is exactly one of the following variants:
//
//   - Null
//   - Bool, Int, Float, String (scalars)
//   - List (ordered, arbitrarily nested)
//   - Map (ordered string keys, arbitrarily nested)
//   - Node, Relationship, Path (graph values)
//
// The union is deliberately closed: classification and flattening code
// switches exhaustively on Kind instead of doing open-ended reflection.
// Graph values are unpacked by the record classifier before any tabular
// processing happens, so flattening only ever sees Null/scalar/List/Map.
//
// Example:
//
//	props := value.NewMap()
//	props.Set("name", value.String("Alice"))
//	props.Set("age", value.Int(30))
//
//	v := value.FromMap(props)
//	v.Kind() // value.KindMap
package value

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind discriminates the active variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
	KindNode
	KindRelationship
	KindPath
)

// String returns the kind name for logs and error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindNode:
		return "node"
	case KindRelationship:
		return "relationship"
	case KindPath:
		return "path"
	default:
		return "unknown"
	}
}

// Value is one dynamically typed cell. The zero value is Null.
//
// Values are immutable once constructed; it is safe to share them across
// goroutines. Exactly one variant is active, reported by Kind().
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list []Value
	m    *Map
	node *Node
	rel  *Relationship
	path *Path
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps a 64-bit integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a 64-bit float.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List wraps an ordered list of values. A nil slice is an empty list,
// not null.
func List(items []Value) Value { return Value{kind: KindList, list: items} }

// FromMap wraps an ordered map. A nil map is treated as an empty map.
func FromMap(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, m: m}
}

// FromNode wraps a graph node.
func FromNode(n *Node) Value { return Value{kind: KindNode, node: n} }

// FromRelationship wraps a graph relationship.
func FromRelationship(r *Relationship) Value {
	return Value{kind: KindRelationship, rel: r}
}

// FromPath wraps a graph path.
func FromPath(p *Path) Value { return Value{kind: KindPath, path: p} }

// Kind reports the active variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload. Valid only for KindBool.
func (v Value) AsBool() bool { return v.b }

// AsInt returns the integer payload. Valid only for KindInt.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns the float payload. Valid only for KindFloat.
func (v Value) AsFloat() float64 { return v.f }

// AsString returns the string payload. Valid only for KindString.
func (v Value) AsString() string { return v.s }

// AsList returns the list payload. Valid only for KindList.
func (v Value) AsList() []Value { return v.list }

// AsMap returns the map payload. Valid only for KindMap.
func (v Value) AsMap() *Map { return v.m }

// AsNode returns the node payload. Valid only for KindNode.
func (v Value) AsNode() *Node { return v.node }

// AsRelationship returns the relationship payload. Valid only for
// KindRelationship.
func (v Value) AsRelationship() *Relationship { return v.rel }

// AsPath returns the path payload. Valid only for KindPath.
func (v Value) AsPath() *Path { return v.path }

// Text renders the value in its natural string form: scalars via strconv,
// null as "null". Lists and maps fall back to compact JSON; callers that
// need the serialization failure surfaced should use MarshalJSON directly.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return v.kind.String()
		}
		return string(data)
	}
}

// MarshalJSON encodes the value as compact JSON. Map entry order is
// preserved. Graph values encode as objects carrying their identity,
// labels/type and properties.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		return json.Marshal(v.f)
	case KindString:
		return json.Marshal(v.s)
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := json.Marshal(item)
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindMap:
		return v.m.MarshalJSON()
	case KindNode:
		return json.Marshal(v.node)
	case KindRelationship:
		return json.Marshal(v.rel)
	case KindPath:
		return json.Marshal(v.path)
	default:
		return []byte("null"), nil
	}
}

// Map is a string-keyed map that preserves insertion order, matching the
// entry ordering the query engine returned. Keys are unique; setting an
// existing key overwrites in place without changing its position.
type Map struct {
	keys    []string
	entries map[string]Value
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{entries: make(map[string]Value)}
}

// Set stores key→v, appending the key on first sight.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = v
}

// Get returns the value for key and whether it exists.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Keys returns the keys in insertion order. The slice is shared; callers
// must not mutate it.
func (m *Map) Keys() []string { return m.keys }

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		data, err := json.Marshal(m.entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Node is a graph node as returned by one query. The ID is an opaque
// identity assigned by the engine, stable for the duration of a render;
// nodes are deduplicated by it.
type Node struct {
	ID         string           `json:"id"`
	Labels     []string         `json:"labels"`
	Properties map[string]Value `json:"properties"`
}

// Relationship is a directed graph edge between two node identities.
type Relationship struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	StartID    string           `json:"startNode"`
	EndID      string           `json:"endNode"`
	Properties map[string]Value `json:"properties"`
}

// Path is an alternating node/relationship sequence returned as a single
// value. Paths are never retained as-is: the classifier unpacks their
// members into the node and relationship sets.
type Path struct {
	Nodes         []*Node         `json:"nodes"`
	Relationships []*Relationship `json:"relationships"`
}

// Field is one named cell of a record.
type Field struct {
	Key   string
	Value Value
}

// Record is one row of results from a single statement execution: an
// ordered list of named values. Field names are assumed unique within a
// record for column keying, though the engine does not guarantee it.
type Record []Field
