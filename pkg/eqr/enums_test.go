package eqr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridscope/ferceqr/pkg/errors"
)

func TestCanonicalUppercasesTitleCase(t *testing.T) {
	tests := []struct {
		name      string
		canonical func(string) (string, error)
		input     string
		expected  string
	}{
		{"RateType", CanonicalRateType, "Fixed", "FIXED"},
		{"RateTypeAlreadyUpper", CanonicalRateType, "RTO/ISO", "RTO/ISO"},
		{"ProductName", CanonicalProductName, "Booked Out Power", "BOOKED OUT POWER"},
		{"RateUnits", CanonicalRateUnits, "$/mwh", "$/MWH"},
		{"ExchangeBrokerage", CanonicalExchangeBrokerage, "Broker", "BROKER"},
		{"IncrementName", CanonicalIncrementName, "h", "H"},
		{"IncrementPeaking", CanonicalIncrementPeakingName, "fp", "FP"},
		{"ClassName", CanonicalClassName, "nf", "NF"},
		{"TermName", CanonicalTermName, "Lt", "LT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.canonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCanonicalTimeZone(t *testing.T) {
	t.Run("TwoLetterCode", func(t *testing.T) {
		got, err := CanonicalTimeZone("ES")
		require.NoError(t, err)
		assert.Equal(t, "ES", got)
	})

	t.Run("ThreeLetterFormTrimmed", func(t *testing.T) {
		// Filers sometimes write "EST" where the dictionary says "ES"
		got, err := CanonicalTimeZone("EST")
		require.NoError(t, err)
		assert.Equal(t, "ES", got)
	})

	t.Run("Lowercase", func(t *testing.T) {
		got, err := CanonicalTimeZone("pd")
		require.NoError(t, err)
		assert.Equal(t, "PD", got)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := CanonicalTimeZone("XX")
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})
}

func TestCanonicalEmptyPassesThrough(t *testing.T) {
	got, err := CanonicalExchangeBrokerage("")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = CanonicalTimeZone("  ")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestCanonicalRejectsUnknownValues(t *testing.T) {
	_, err := CanonicalClassName("FIRMISH")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = CanonicalProductName("DARK ENERGY")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestCanonicalProductTypeNameCaseSensitive(t *testing.T) {
	got, err := CanonicalProductTypeName("MB - Market Based")
	require.NoError(t, err)
	assert.Equal(t, "MB - Market Based", got)

	// product_type_name is published mixed-case; no case folding is applied
	_, err = CanonicalProductTypeName("MB - MARKET BASED")
	assert.Error(t, err)
}

func TestEnumContains(t *testing.T) {
	assert.True(t, TimeZones.Contains("PS"))
	assert.False(t, TimeZones.Contains("PST"))
	assert.True(t, ProductNames.Contains("ENERGY"))
}
