package configargparse

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultParser tests the ini/yaml-ish default grammar
func TestDefaultParser(t *testing.T) {
	parse := func(t *testing.T, content string) []Entry {
		t.Helper()
		entries, err := DefaultParser{}.Parse(strings.NewReader(content), "test.conf")
		require.NoError(t, err)
		return entries
	}

	t.Run("CommentsAndBlanksIgnored", func(t *testing.T) {
		entries := parse(t, `
# hash comment
; semicolon comment
---
-----

host = example.com
`)
		require.Len(t, entries, 1)
		assert.Equal(t, "host", entries[0].Key)
		assert.Equal(t, scalarValue("example.com"), entries[0].Value)
		assert.Equal(t, 7, entries[0].Line)
	})

	t.Run("SectionHeadersCarryNoSemantics", func(t *testing.T) {
		entries := parse(t, `
[server]
host = a.example.com
[client]
host2 = b.example.com
`)
		require.Len(t, entries, 2)
		assert.Equal(t, "host", entries[0].Key)
		assert.Equal(t, "host2", entries[1].Key)
	})

	t.Run("SeparatorVariants", func(t *testing.T) {
		entries := parse(t, `
a = 1
b: 2
c 3
d=4
e:5
`)
		require.Len(t, entries, 5)
		for _, e := range entries {
			assert.Equal(t, ValueScalar, e.Value.Kind)
		}
		assert.Equal(t, "1", entries[0].Value.Scalar)
		assert.Equal(t, "2", entries[1].Value.Scalar)
		assert.Equal(t, "3", entries[2].Value.Scalar)
		assert.Equal(t, "4", entries[3].Value.Scalar)
		assert.Equal(t, "5", entries[4].Value.Scalar)
	})

	t.Run("LeadingDashesStrippedFromKeys", func(t *testing.T) {
		entries := parse(t, "--host = example.com\n--verbose\n")
		require.Len(t, entries, 2)
		assert.Equal(t, "host", entries[0].Key)
		assert.Equal(t, "verbose", entries[1].Key)
		assert.Equal(t, boolTrueValue(), entries[1].Value)
	})

	t.Run("BareKeyImpliesTrue", func(t *testing.T) {
		entries := parse(t, "debug\nverbose  # trailing comment\n")
		require.Len(t, entries, 2)
		assert.Equal(t, boolTrueValue(), entries[0].Value)
		assert.Equal(t, boolTrueValue(), entries[1].Value)
	})

	t.Run("QuotedValues", func(t *testing.T) {
		entries := parse(t, `
greeting = " hello world "
name = 'single'
hash = "a # b"
`)
		require.Len(t, entries, 3)
		assert.Equal(t, " hello world ", entries[0].Value.Scalar)
		assert.Equal(t, "single", entries[1].Value.Scalar)
		assert.Equal(t, "a # b", entries[2].Value.Scalar)
	})

	t.Run("InlineComments", func(t *testing.T) {
		entries := parse(t, "host = example.com  # production\npath = /a#b\n")
		require.Len(t, entries, 2)
		assert.Equal(t, "example.com", entries[0].Value.Scalar)
		// a marker not preceded by whitespace is part of the value
		assert.Equal(t, "/a#b", entries[1].Value.Scalar)
	})

	t.Run("BracketLists", func(t *testing.T) {
		entries := parse(t, "fruit = [apple, orange , lemon]\nempty = []\n")
		require.Len(t, entries, 2)
		assert.Equal(t, listValue([]string{"apple", "orange", "lemon"}), entries[0].Value)
		assert.Equal(t, listValue([]string{}), entries[1].Value)
	})

	t.Run("SyntaxErrors", func(t *testing.T) {
		for _, content := range []string{"= value\n", "key =\n", "key :\n"} {
			_, err := DefaultParser{}.Parse(strings.NewReader(content), "bad.conf")
			require.Error(t, err, "content %q", content)
			assert.ErrorIs(t, err, ErrSyntax)

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, "bad.conf", syntaxErr.Path)
			assert.Equal(t, 1, syntaxErr.Line)
		}
	})

	t.Run("OrderPreserved", func(t *testing.T) {
		entries := parse(t, "b = 2\na = 1\nc = 3\n")
		keys := make([]string, len(entries))
		for i, e := range entries {
			keys[i] = e.Key
		}
		assert.Equal(t, []string{"b", "a", "c"}, keys)
	})
}

// TestYAMLParser tests the flat-YAML alternative parser
func TestYAMLParser(t *testing.T) {
	t.Run("FlatMapping", func(t *testing.T) {
		entries, err := YAMLParser{}.Parse(strings.NewReader(`
host: example.com
port: 9090
verbose: true
fruit:
  - apple
  - orange
`), "test.yaml")
		require.NoError(t, err)
		require.Len(t, entries, 4)
		assert.Equal(t, scalarValue("example.com"), entries[0].Value)
		assert.Equal(t, scalarValue("9090"), entries[1].Value)
		assert.Equal(t, scalarValue("true"), entries[2].Value)
		assert.Equal(t, listValue([]string{"apple", "orange"}), entries[3].Value)
		assert.Equal(t, 2, entries[0].Line)
	})

	t.Run("NestedMappingRejected", func(t *testing.T) {
		_, err := YAMLParser{}.Parse(strings.NewReader("server:\n  host: a\n"), "test.yaml")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSyntax)
	})

	t.Run("NonMappingDocumentRejected", func(t *testing.T) {
		_, err := YAMLParser{}.Parse(strings.NewReader("- a\n- b\n"), "test.yaml")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSyntax)
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		entries, err := YAMLParser{}.Parse(strings.NewReader(""), "test.yaml")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

// TestTOMLParser tests the TOML alternative parser
func TestTOMLParser(t *testing.T) {
	t.Run("FlatKeysAndTables", func(t *testing.T) {
		entries, err := TOMLParser{}.Parse(strings.NewReader(`
verbose = true
port = 9090
ratio = 0.5

[server]
host = "example.com"
tags = ["a", "b"]
`), "test.toml")
		require.NoError(t, err)
		require.Len(t, entries, 5)

		byKey := make(map[string]Value)
		for _, e := range entries {
			byKey[e.Key] = e.Value
		}
		assert.Equal(t, scalarValue("true"), byKey["verbose"])
		assert.Equal(t, scalarValue("9090"), byKey["port"])
		assert.Equal(t, scalarValue("0.5"), byKey["ratio"])
		// table names carry no semantics, keys are flattened
		assert.Equal(t, scalarValue("example.com"), byKey["host"])
		assert.Equal(t, listValue([]string{"a", "b"}), byKey["tags"])
	})

	t.Run("InvalidTOML", func(t *testing.T) {
		_, err := TOMLParser{}.Parse(strings.NewReader("host = notquoted\n"), "test.toml")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSyntax))
	})
}
