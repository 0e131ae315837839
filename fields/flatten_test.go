package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten(t *testing.T) {
	t.Run("scalars at root keep their keys", func(t *testing.T) {
		tree := Map(E("a", String("one")), E("b", String("two")))

		assert.Equal(t, Pairs{{"a", "one"}, {"b", "two"}}, Flatten(tree))
	})

	t.Run("nested map uses bracket paths", func(t *testing.T) {
		tree := Map(
			E("name", String("John Smith")),
			E("address", Map(
				E("street", String("London Road")),
				E("town", String("Bristol")),
			)),
		)

		expected := Pairs{
			{"name", "John Smith"},
			{"address[street]", "London Road"},
			{"address[town]", "Bristol"},
		}
		assert.Equal(t, expected, Flatten(tree))
	})

	t.Run("list items use their index", func(t *testing.T) {
		tree := Map(E("items", List(
			Map(E("sku", String("A1")), E("qty", Int(2))),
			Map(E("sku", String("B2")), E("qty", Int(1))),
		)))

		expected := Pairs{
			{"items[0][sku]", "A1"},
			{"items[0][qty]", "2"},
			{"items[1][sku]", "B2"},
			{"items[1][qty]", "1"},
		}
		assert.Equal(t, expected, Flatten(tree))
	})

	t.Run("root list uses bare indexes", func(t *testing.T) {
		assert.Equal(t, Pairs{{"0", "x"}, {"1", "y"}}, Flatten(List(String("x"), String("y"))))
	})

	t.Run("null values are skipped", func(t *testing.T) {
		tree := Map(E("a", String("one")), E("b", Null()), E("c", Map(E("d", Null()))))

		assert.Equal(t, Pairs{{"a", "one"}}, Flatten(tree))
	})

	t.Run("root scalar has empty key", func(t *testing.T) {
		assert.Equal(t, Pairs{{"", "v"}}, Flatten(String("v")))
	})

	t.Run("null root yields nothing", func(t *testing.T) {
		assert.Empty(t, Flatten(Null()))
	})
}

func TestUnflatten(t *testing.T) {
	t.Run("plain keys stay scalars", func(t *testing.T) {
		got := Unflatten(Pairs{{"a", "one"}, {"b", "two"}})

		assert.True(t, got.Equal(Map(E("a", String("one")), E("b", String("two")))))
	})

	t.Run("single level nesting groups by base key", func(t *testing.T) {
		got := Unflatten(Pairs{
			{"threeDSRef", "AAA"},
			{"threeDSResponse[MD]", "MMM"},
			{"threeDSResponse[PaRes]", "PPP"},
			{"merchantID", "100856"},
		})

		expected := Map(
			E("threeDSRef", String("AAA")),
			E("threeDSResponse", Map(
				E("MD", String("MMM")),
				E("PaRes", String("PPP")),
			)),
			E("merchantID", String("100856")),
		)
		assert.True(t, got.Equal(expected))
		assert.Equal(t, "PPP", got.Get("threeDSResponse", "PaRes").String())
	})

	t.Run("deep keys are peeled recursively", func(t *testing.T) {
		got := Unflatten(Pairs{{"a[b][c]", "1"}, {"a[b][d]", "2"}, {"a[e]", "3"}})

		expected := Map(E("a", Map(
			E("b", Map(E("c", String("1")), E("d", String("2")))),
			E("e", String("3")),
		)))
		assert.True(t, got.Equal(expected))
	})

	t.Run("sequential indexes become a list", func(t *testing.T) {
		got := Unflatten(Pairs{{"items[0][sku]", "A1"}, {"items[1][sku]", "B2"}})

		items := got.Get("items")
		assert.Equal(t, KindList, items.Kind())
		assert.Equal(t, 2, items.Len())
		assert.Equal(t, "B2", got.Get("items", "1", "sku").String())
	})

	t.Run("sequential root keys become a list", func(t *testing.T) {
		got := Unflatten(Pairs{{"0", "x"}, {"1", "y"}})

		assert.Equal(t, KindList, got.Kind())
		assert.Equal(t, "y", got.Get("1").String())
	})

	t.Run("empty input is an empty map", func(t *testing.T) {
		got := Unflatten(nil)

		assert.Equal(t, KindMap, got.Kind())
		assert.Equal(t, 0, got.Len())
	})

	t.Run("sparse indexes stay a map", func(t *testing.T) {
		got := Unflatten(Pairs{{"items[1]", "x"}, {"items[3]", "y"}})

		assert.Equal(t, KindMap, got.Get("items").Kind())
	})

	t.Run("non-contiguous group keeps first-seen position", func(t *testing.T) {
		got := Unflatten(Pairs{{"a[x]", "1"}, {"b", "2"}, {"a[y]", "3"}})

		entries := got.Entries()
		assert.Len(t, entries, 2)
		assert.Equal(t, "a", entries[0].Key)
		assert.Equal(t, "b", entries[1].Key)
		assert.Equal(t, 2, entries[0].Value.Len())
	})

	t.Run("scalar and group sharing a base are both kept", func(t *testing.T) {
		in := Pairs{{"a", "plain"}, {"a[x]", "nested"}}
		got := Unflatten(in)

		entries := got.Entries()
		assert.Len(t, entries, 2)
		assert.Equal(t, KindScalar, entries[0].Value.Kind())
		assert.Equal(t, KindMap, entries[1].Value.Kind())
		assert.Equal(t, in, Flatten(got))
	})

	t.Run("malformed brackets are plain keys", func(t *testing.T) {
		got := Unflatten(Pairs{{"a[b", "1"}, {"[c]", "2"}})

		assert.Equal(t, "1", got.Get("a[b").String())
		assert.Equal(t, "2", got.Get("[c]").String())
	})

	t.Run("empty input yields empty map", func(t *testing.T) {
		got := Unflatten(nil)

		assert.Equal(t, KindMap, got.Kind())
		assert.Equal(t, 0, got.Len())
	})
}

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	trees := map[string]Tree{
		"flat": Map(E("a", String("one")), E("b", String("two"))),
		"nested": Map(
			E("name", String("John")),
			E("address", Map(E("street", String("London Road")), E("town", String("Bristol")))),
		),
		"three levels": Map(E("a", Map(E("b", Map(E("c", String("deep")), E("d", String("er"))))))),
		"lists": Map(
			E("items", List(
				Map(E("sku", String("A1")), E("tags", List(String("x"), String("y")))),
				Map(E("sku", String("B2"))),
			)),
			E("total", Int(3)),
		),
		"special characters": Map(E("note", String("a&b=c [d] *~")), E("x", Map(E("y", String("z"))))),
		"root list":          List(String("x"), String("y")),
		"root list of maps":  List(Map(E("sku", String("A1"))), Map(E("sku", String("B2")))),
	}

	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			got := Unflatten(Flatten(tree))
			assert.True(t, tree.Equal(got), "round trip changed tree: %+v", got)
		})
	}

	t.Run("maps keyed 0..n-1 read back as lists", func(t *testing.T) {
		nested := Map(E("a", Map(E("0", String("x")), E("1", String("y")))))
		got := Unflatten(Flatten(nested))

		assert.True(t, got.Equal(Map(E("a", List(String("x"), String("y"))))))

		root := Map(E("0", String("x")), E("1", String("y")))
		got = Unflatten(Flatten(root))

		assert.True(t, got.Equal(List(String("x"), String("y"))))
		assert.Equal(t, Flatten(root), Flatten(got))
	})

	t.Run("pairs survive unflatten then flatten", func(t *testing.T) {
		in := Pairs{
			{"merchantID", "100856"},
			{"threeDSResponse[PaRes]", "P"},
			{"threeDSResponse[MD]", "M"},
			{"items[0][sku]", "A1"},
			{"items[1][sku]", "B2"},
		}

		assert.Equal(t, in, Flatten(Unflatten(in)))
	})
}

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key    string
		base   string
		child  string
		nested bool
	}{
		{key: "a", nested: false},
		{key: "a[b]", base: "a", child: "b", nested: true},
		{key: "a[b][c]", base: "a", child: "b[c]", nested: true},
		{key: "a[b][c][d]", base: "a", child: "b[c][d]", nested: true},
		{key: "a[]", base: "a", child: "", nested: true},
		{key: "a[b", nested: false},
		{key: "[b]", nested: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			base, child, ok := splitKey(tt.key)
			assert.Equal(t, tt.nested, ok)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.child, child)
		})
	}
}
