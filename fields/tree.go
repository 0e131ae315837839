package fields

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

// Kind identifies which variant a Tree holds.
type Kind uint8

const (
	// KindNull is the zero Tree. Null values are skipped when flattening.
	KindNull Kind = iota

	// KindScalar is a terminal string value.
	KindScalar

	// KindMap is an ordered sequence of named children.
	KindMap

	// KindList is a sequence of children addressed by position.
	KindList
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Entry is a named child of a map Tree.
type Entry struct {
	Key   string
	Value Tree
}

// E is shorthand for constructing an Entry.
func E(key string, value Tree) Entry {
	return Entry{Key: key, Value: value}
}

// Tree is a field tree: a scalar, an ordered map of named children, or a
// list of positional children. The variant is fixed at construction.
//
// Map entries keep insertion order and may repeat a key; Lookup returns the
// first match.
type Tree struct {
	kind    Kind
	scalar  string
	entries []Entry
	items   []Tree
}

// Null returns the absent value.
func Null() Tree { return Tree{} }

// String returns a scalar Tree.
func String(s string) Tree { return Tree{kind: KindScalar, scalar: s} }

// Int returns a scalar Tree holding the decimal form of n.
func Int(n int64) Tree { return String(strconv.FormatInt(n, 10)) }

// Uint returns a scalar Tree holding the decimal form of n.
func Uint(n uint64) Tree { return String(strconv.FormatUint(n, 10)) }

// Bool returns a scalar Tree holding "true" or "false".
func Bool(b bool) Tree { return String(strconv.FormatBool(b)) }

// Float returns a scalar Tree holding the shortest decimal form of f.
// Integral values are rendered without a fraction.
func Float(f float64) Tree {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return String(strconv.FormatInt(int64(f), 10))
	}

	return String(strconv.FormatFloat(f, 'f', -1, 64))
}

// Map returns a map Tree with the given entries in order.
func Map(entries ...Entry) Tree {
	return Tree{kind: KindMap, entries: slices.Clone(entries)}
}

// List returns a list Tree with the given items in order.
func List(items ...Tree) Tree {
	return Tree{kind: KindList, items: slices.Clone(items)}
}

// FromValue converts a Go value into a Tree.
//
// Supported inputs are Tree, nil, strings, booleans, integer and floating
// point numbers, fmt.Stringer, map[string]any, map[string]string, []any,
// []string and Pairs. Map keys are visited in ascending order because Go
// maps carry no insertion order.
//
// Floating point numbers go through Float, so integral values lose their
// fraction: 10.0 is stored as "10", not "10.0". Pass a string when the
// exact rendering of a signed amount matters.
func FromValue(v any) (Tree, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case Tree:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return Uint(uint64(val)), nil
	case uint8:
		return Uint(uint64(val)), nil
	case uint16:
		return Uint(uint64(val)), nil
	case uint32:
		return Uint(uint64(val)), nil
	case uint64:
		return Uint(val), nil
	case float32:
		return Float(float64(val)), nil
	case float64:
		return Float(val), nil
	case Pairs:
		return Unflatten(val), nil
	case map[string]string:
		entries := make([]Entry, 0, len(val))
		for _, k := range sortedKeys(val) {
			entries = append(entries, E(k, String(val[k])))
		}

		return Tree{kind: KindMap, entries: entries}, nil
	case map[string]any:
		entries := make([]Entry, 0, len(val))
		for _, k := range sortedKeys(val) {
			child, err := FromValue(val[k])
			if err != nil {
				return Tree{}, fmt.Errorf("%s: %w", k, err)
			}

			entries = append(entries, E(k, child))
		}

		return Tree{kind: KindMap, entries: entries}, nil
	case []string:
		items := make([]Tree, 0, len(val))
		for _, s := range val {
			items = append(items, String(s))
		}

		return Tree{kind: KindList, items: items}, nil
	case []any:
		items := make([]Tree, 0, len(val))
		for i, item := range val {
			child, err := FromValue(item)
			if err != nil {
				return Tree{}, fmt.Errorf("%d: %w", i, err)
			}

			items = append(items, child)
		}

		return Tree{kind: KindList, items: items}, nil
	case fmt.Stringer:
		return String(val.String()), nil
	default:
		return Tree{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// Kind reports the variant held by t.
func (t Tree) Kind() Kind { return t.kind }

// IsNull reports whether t is the absent value.
func (t Tree) IsNull() bool { return t.kind == KindNull }

// String returns the scalar value, or an empty string for other kinds.
func (t Tree) String() string { return t.scalar }

// Len returns the number of children of a map or list, and zero otherwise.
func (t Tree) Len() int {
	switch t.kind {
	case KindMap:
		return len(t.entries)
	case KindList:
		return len(t.items)
	default:
		return 0
	}
}

// Entries returns a copy of the map entries. It is nil for other kinds.
func (t Tree) Entries() []Entry { return slices.Clone(t.entries) }

// Items returns a copy of the list items. It is nil for other kinds.
func (t Tree) Items() []Tree { return slices.Clone(t.items) }

// Lookup returns the first child named key. List children are addressed by
// their decimal index.
func (t Tree) Lookup(key string) (Tree, bool) {
	switch t.kind {
	case KindMap:
		for _, e := range t.entries {
			if e.Key == key {
				return e.Value, true
			}
		}
	case KindList:
		idx, err := strconv.Atoi(key)
		if err == nil && idx >= 0 && idx < len(t.items) {
			return t.items[idx], true
		}
	}

	return Tree{}, false
}

// Get walks path from t and returns the Tree found there, or Null when any
// step is missing.
func (t Tree) Get(path ...string) Tree {
	cur := t
	for _, key := range path {
		next, ok := cur.Lookup(key)
		if !ok {
			return Null()
		}

		cur = next
	}

	return cur
}

// Equal reports whether t and other hold the same variant and contents.
func (t Tree) Equal(other Tree) bool {
	if t.kind != other.kind {
		return false
	}

	switch t.kind {
	case KindScalar:
		return t.scalar == other.scalar
	case KindMap:
		return slices.EqualFunc(t.entries, other.entries, func(a, b Entry) bool {
			return a.Key == b.Key && a.Value.Equal(b.Value)
		})
	case KindList:
		return slices.EqualFunc(t.items, other.items, Tree.Equal)
	default:
		return true
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
