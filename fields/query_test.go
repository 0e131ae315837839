package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		pairs    Pairs
		expected string
	}{
		{name: "empty", pairs: nil, expected: ""},
		{name: "single", pairs: Pairs{{"a", "one"}}, expected: "a=one"},
		{name: "no trailing separator", pairs: Pairs{{"a", "one"}, {"b", "two"}}, expected: "a=one&b=two"},
		{name: "space becomes plus", pairs: Pairs{{"name", "John Smith"}}, expected: "name=John+Smith"},
		{name: "brackets in keys are escaped", pairs: Pairs{{"address[town]", "Bristol"}}, expected: "address%5Btown%5D=Bristol"},
		{name: "reserved characters", pairs: Pairs{{"q", `"'?&=/`}}, expected: "q=%22%27%3F%26%3D%2F"},
		{name: "line endings", pairs: Pairs{{"k", "\r\n"}}, expected: "k=%0D%0A"},
		{name: "unreserved characters kept", pairs: Pairs{{"k", "a-b_c.d~e"}}, expected: "k=a-b_c.d~e"},
		{name: "asterisk escaped", pairs: Pairs{{"k", "*"}}, expected: "k=%2A"},
		{name: "utf-8", pairs: Pairs{{"k", "é"}}, expected: "k=%C3%A9"},
		{name: "duplicates kept in order", pairs: Pairs{{"k", "1"}, {"k", "2"}}, expected: "k=1&k=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Encode(tt.pairs))
		})
	}
}

func TestParseQuery(t *testing.T) {
	t.Run("keeps order and duplicates", func(t *testing.T) {
		got, err := ParseQuery("b=2&a=1&b=3")
		require.NoError(t, err)

		assert.Equal(t, Pairs{{"b", "2"}, {"a", "1"}, {"b", "3"}}, got)
	})

	t.Run("decodes escapes and plus", func(t *testing.T) {
		got, err := ParseQuery("responseMessage=AUTHCODE%3A+123&address%5Btown%5D=Bristol")
		require.NoError(t, err)

		assert.Equal(t, Pairs{{"responseMessage", "AUTHCODE: 123"}, {"address[town]", "Bristol"}}, got)
	})

	t.Run("missing value and empty segments", func(t *testing.T) {
		got, err := ParseQuery("a&&b=")
		require.NoError(t, err)

		assert.Equal(t, Pairs{{"a", ""}, {"b", ""}}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := ParseQuery("")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("invalid escape", func(t *testing.T) {
		_, err := ParseQuery("a=%zz")
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})

	t.Run("semicolon is not a separator", func(t *testing.T) {
		got, err := ParseQuery("a=1;b=2")
		require.NoError(t, err)
		assert.Equal(t, Pairs{{"a", "1;b=2"}}, got)
	})

	t.Run("encode then parse is lossless", func(t *testing.T) {
		in := Pairs{{"x[y]", "a b&c=d"}, {"n", "\r\n*~"}, {"x[z]", ""}}

		got, err := ParseQuery(Encode(in))
		require.NoError(t, err)
		assert.Equal(t, in, got)
	})
}
