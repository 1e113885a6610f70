package configargparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultTokenizer tests value-to-token synthesis
func TestDefaultTokenizer(t *testing.T) {
	tz := DefaultTokenizer{}

	t.Run("FlagOption", func(t *testing.T) {
		opt := &Option{Name: "verbose", Kind: KindFlag}

		tokens, err := tz.Tokens(opt, boolTrueValue())
		require.NoError(t, err)
		assert.Equal(t, []string{"--verbose"}, tokens)

		tokens, err = tz.Tokens(opt, scalarValue("True"))
		require.NoError(t, err)
		assert.Equal(t, []string{"--verbose"}, tokens)

		// false emits nothing, leaving the option for the engine default
		tokens, err = tz.Tokens(opt, scalarValue("false"))
		require.NoError(t, err)
		assert.Empty(t, tokens)

		_, err = tz.Tokens(opt, scalarValue("yes"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrArityMismatch)

		_, err = tz.Tokens(opt, listValue([]string{"a"}))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrArityMismatch)
	})

	t.Run("ListOption", func(t *testing.T) {
		opt := &Option{Name: "fruit", Kind: KindList}

		tokens, err := tz.Tokens(opt, listValue([]string{"apple", "orange", "lemon"}))
		require.NoError(t, err)
		assert.Equal(t, []string{"--fruit", "apple", "--fruit", "orange", "--fruit", "lemon"}, tokens)

		tokens, err = tz.Tokens(opt, scalarValue("apple"))
		require.NoError(t, err)
		assert.Equal(t, []string{"--fruit", "apple"}, tokens)
	})

	t.Run("ScalarOption", func(t *testing.T) {
		opt := &Option{Name: "host", Kind: KindScalar}

		tokens, err := tz.Tokens(opt, scalarValue("example.com"))
		require.NoError(t, err)
		assert.Equal(t, []string{"--host", "example.com"}, tokens)

		// a bare key passes the literal string "true" through
		tokens, err = tz.Tokens(opt, boolTrueValue())
		require.NoError(t, err)
		assert.Equal(t, []string{"--host", "true"}, tokens)

		_, err = tz.Tokens(opt, listValue([]string{"a", "b"}))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrArityMismatch)
	})
}
