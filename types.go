package varconf

import (
	"iter"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	IntegerKind Kind = iota
	BooleanKind
	StringKind
	ArrayKind
	TableKind

	// pendingKind marks a string that still carries {name} placeholders.
	// It never appears in a returned Document.
	pendingKind Kind = -1
)

func (k Kind) String() string {
	switch k {
	case IntegerKind:
		return "integer"
	case BooleanKind:
		return "boolean"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case TableKind:
		return "table"
	case pendingKind:
		return "placeholder"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is one of Integer, Boolean, String, Array or *Table.
type Value interface {
	Kind() Kind
}

// Integer is a signed decimal integer.
type Integer int64

// Boolean is a true/false value.
type Boolean bool

// String is a quoted literal or a bare identifier.
type String string

// Array is an ordered, possibly heterogeneous list of values.
type Array []Value

func (Integer) Kind() Kind { return IntegerKind }
func (Boolean) Kind() Kind { return BooleanKind }
func (String) Kind() Kind  { return StringKind }
func (Array) Kind() Kind   { return ArrayKind }
func (*Table) Kind() Kind  { return TableKind }

// Entry is a single key/value pair of a Table.
type Entry struct {
	Key   string
	Value Value
}

// Table is a mapping from names to values that remembers insertion order.
// Setting an existing key replaces its value in place.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Set inserts or replaces the value stored under key.
func (t *Table) Set(key string, v Value) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[key]; ok {
		t.entries[i].Value = v
		return
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, Entry{Key: key, Value: v})
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (Value, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.entries[i].Value, true
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.index[key]
	return ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// All iterates over the entries in insertion order.
func (t *Table) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, e := range t.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Document is the result of a successful parse: the table of top-level
// assignments.
type Document struct {
	Table
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{Table: Table{index: make(map[string]int)}}
}

// pending is a string holding unresolved {name} placeholders.
type pending struct {
	text string
}

func (pending) Kind() Kind { return pendingKind }
