package fields

import (
	"net/url"
	"slices"
	"strings"
)

// Pair is a single flat field. Key may carry bracket suffixes that encode
// nesting, e.g. "address[street]" or "items[0][sku]".
type Pair struct {
	Key   string
	Value string
}

// Pairs is an ordered sequence of flat fields. It is the wire
// representation of a form body: order is kept and keys may repeat.
type Pairs []Pair

// FromPairs builds Pairs from raw two-element key/value arrays.
func FromPairs(raw [][2]string) Pairs {
	out := make(Pairs, 0, len(raw))
	for _, kv := range raw {
		out = append(out, Pair{Key: kv[0], Value: kv[1]})
	}

	return out
}

// FromMap flattens a nested Go map into Pairs. Nil values are dropped.
func FromMap(m map[string]any) (Pairs, error) {
	tree, err := FromValue(m)
	if err != nil {
		return nil, err
	}

	return Flatten(tree), nil
}

// FromValues converts url.Values into Pairs. Keys are emitted in ascending
// order; the order of repeated values of one key is kept.
func FromValues(v url.Values) Pairs {
	out := make(Pairs, 0, len(v))
	for _, k := range sortedKeys(v) {
		for _, val := range v[k] {
			out = append(out, Pair{Key: k, Value: val})
		}
	}

	return out
}

// BaseKey returns the part of key before its first '[', or key itself when
// it has no bracket.
func BaseKey(key string) string {
	if i := strings.IndexByte(key, '['); i >= 0 {
		return key[:i]
	}

	return key
}

// Lookup returns the value of the first pair named key.
func (p Pairs) Lookup(key string) (string, bool) {
	for _, pair := range p {
		if pair.Key == key {
			return pair.Value, true
		}
	}

	return "", false
}

// Get returns the value of the first pair named key, or an empty string.
func (p Pairs) Get(key string) string {
	v, _ := p.Lookup(key)
	return v
}

// Has reports whether a pair named key exists.
func (p Pairs) Has(key string) bool {
	_, ok := p.Lookup(key)
	return ok
}

// Count returns the number of pairs named key.
func (p Pairs) Count(key string) int {
	n := 0
	for _, pair := range p {
		if pair.Key == key {
			n++
		}
	}

	return n
}

// Keys returns the keys of p in order, duplicates included.
func (p Pairs) Keys() []string {
	keys := make([]string, 0, len(p))
	for _, pair := range p {
		keys = append(keys, pair.Key)
	}

	return keys
}

// Clone returns an independent copy of p.
func (p Pairs) Clone() Pairs {
	if p == nil {
		return nil
	}

	return slices.Clone(p)
}

// Add appends a pair and returns the extended sequence.
func (p Pairs) Add(key, value string) Pairs {
	return append(p, Pair{Key: key, Value: value})
}

// Set replaces the value of the first pair named key, or appends a new pair
// when none exists. The receiver is not modified.
func (p Pairs) Set(key, value string) Pairs {
	out := p.Clone()
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}

	return append(out, Pair{Key: key, Value: value})
}

// Delete returns a copy of p without any pair whose key is in keys.
func (p Pairs) Delete(keys ...string) Pairs {
	out := make(Pairs, 0, len(p))
	for _, pair := range p {
		if !slices.Contains(keys, pair.Key) {
			out = append(out, pair)
		}
	}

	return out
}

// Take removes the first pair named key. It returns the value, the
// remaining pairs and whether the key was found. The receiver is not
// modified.
func (p Pairs) Take(key string) (string, Pairs, bool) {
	for i, pair := range p {
		if pair.Key == key {
			rest := make(Pairs, 0, len(p)-1)
			rest = append(rest, p[:i]...)
			rest = append(rest, p[i+1:]...)

			return pair.Value, rest, true
		}
	}

	return "", p.Clone(), false
}

// Select returns the pairs whose base key is one of bases, in their
// original order.
func (p Pairs) Select(bases ...string) Pairs {
	out := make(Pairs, 0, len(p))
	for _, pair := range p {
		if slices.Contains(bases, BaseKey(pair.Key)) {
			out = append(out, pair)
		}
	}

	return out
}

// Values converts p into url.Values. Pair order across different keys is
// lost.
func (p Pairs) Values() url.Values {
	v := make(url.Values, len(p))
	for _, pair := range p {
		v[pair.Key] = append(v[pair.Key], pair.Value)
	}

	return v
}
