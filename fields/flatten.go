package fields

import (
	"strconv"
	"strings"
)

// Flatten converts a Tree into flat pairs using bracket paths. A child of
// the root keeps its own key, deeper children are addressed as
// parent[key]; list items use their index as key. Null values are skipped.
//
// Output order follows the tree's own order.
func Flatten(t Tree) Pairs {
	var out Pairs
	flattenInto(&out, "", t)

	return out
}

func flattenInto(out *Pairs, path string, t Tree) {
	switch t.kind {
	case KindNull:
	case KindScalar:
		*out = append(*out, Pair{Key: path, Value: t.scalar})
	case KindMap:
		for _, e := range t.entries {
			flattenInto(out, childPath(path, e.Key), e.Value)
		}
	case KindList:
		for i, item := range t.items {
			flattenInto(out, childPath(path, strconv.Itoa(i)), item)
		}
	}
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}

	return parent + "[" + key + "]"
}

// Unflatten rebuilds a Tree from flat pairs. It is the inverse of Flatten.
//
// Pairs are grouped by base key in first-seen order and nested keys are
// peeled recursively, so "a[b][c]" becomes a -> b -> c. At every level,
// the root included, keys that are exactly 0..n-1 in order become a list;
// a map built with such keys is therefore read back as a list. When a
// plain key and a nested group share a base key, both are kept as separate
// entries with the same name. Empty input yields an empty map.
func Unflatten(p Pairs) Tree {
	return nestedTree(p)
}

type group struct {
	key      string
	nested   bool
	scalar   string
	children Pairs
}

func unflattenEntries(p Pairs) []Entry {
	groups := make([]*group, 0, len(p))
	nested := make(map[string]*group)

	for _, pair := range p {
		base, rest, ok := splitKey(pair.Key)
		if !ok {
			groups = append(groups, &group{key: pair.Key, scalar: pair.Value})
			continue
		}

		g, found := nested[base]
		if !found {
			g = &group{key: base, nested: true}
			nested[base] = g
			groups = append(groups, g)
		}

		g.children = append(g.children, Pair{Key: rest, Value: pair.Value})
	}

	entries := make([]Entry, 0, len(groups))
	for _, g := range groups {
		if !g.nested {
			entries = append(entries, E(g.key, String(g.scalar)))
			continue
		}

		entries = append(entries, E(g.key, nestedTree(g.children)))
	}

	return entries
}

func nestedTree(children Pairs) Tree {
	entries := unflattenEntries(children)
	if !isSequence(entries) {
		return Tree{kind: KindMap, entries: entries}
	}

	items := make([]Tree, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.Value)
	}

	return Tree{kind: KindList, items: items}
}

func isSequence(entries []Entry) bool {
	if len(entries) == 0 {
		return false
	}

	for i, e := range entries {
		if e.Key != strconv.Itoa(i) {
			return false
		}
	}

	return true
}

// splitKey peels one bracket level: "a[b][c]" yields base "a" and child
// key "b[c]". Keys without a leading base or a closing bracket at the end
// are not nested.
func splitKey(key string) (string, string, bool) {
	i := strings.IndexByte(key, '[')
	if i <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}

	inner := key[i+1 : len(key)-1]
	if first, rest, ok := strings.Cut(inner, "]["); ok {
		return key[:i], first + "[" + rest + "]", true
	}

	return key[:i], inner, true
}
