package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridscope/ferceqr/pkg/errors"
)

func TestDecodePayload(t *testing.T) {
	t.Run("ValidUTF8PassesThrough", func(t *testing.T) {
		payload := []byte("seller_company_name\nPacific Gas & Electric\n")
		decoded, err := decodePayload(payload, "x.csv")
		require.NoError(t, err)
		assert.Equal(t, payload, decoded)
	})

	t.Run("CP1252Fallback", func(t *testing.T) {
		// 0xE9 is é in Windows-1252 but invalid UTF-8
		payload := []byte("S\xe9ller Co")
		decoded, err := decodePayload(payload, "x.csv")
		require.NoError(t, err)
		assert.Equal(t, "Séller Co", string(decoded))
	})

	t.Run("SmartQuoteFallback", func(t *testing.T) {
		// 0x93/0x94 are curly quotes in Windows-1252
		payload := []byte("\x93quoted\x94")
		decoded, err := decodePayload(payload, "x.csv")
		require.NoError(t, err)
		assert.Equal(t, "“quoted”", string(decoded))
	})

	t.Run("EmptyPayload", func(t *testing.T) {
		decoded, err := decodePayload(nil, "x.csv")
		require.NoError(t, err)
		assert.Empty(t, decoded)
	})
}

func TestDecodeErrorIsExpectedDefect(t *testing.T) {
	err := &errors.DecodeError{Source: "x.csv"}
	assert.True(t, errors.IsExpectedDefect(err))
}
