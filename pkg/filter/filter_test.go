package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"seller_company_name", "point_of_delivery_balancing_authority", "trade_date", "price"}

func row(seller, ba, tradeDate, price string) []string {
	return []string{seller, ba, tradeDate, price}
}

func TestCompileEquality(t *testing.T) {
	pred, err := Compile(Spec{"point_of_delivery_balancing_authority": Eq("PJM")}, columns)
	require.NoError(t, err)

	assert.True(t, pred(row("A", "PJM", "20240101", "10")))
	assert.False(t, pred(row("A", "CISO", "20240101", "10")))
}

func TestCompileMembership(t *testing.T) {
	pred, err := Compile(Spec{"point_of_delivery_balancing_authority": In("PJM", "MISO")}, columns)
	require.NoError(t, err)

	assert.True(t, pred(row("A", "MISO", "20240101", "10")))
	assert.True(t, pred(row("A", "PJM", "20240101", "10")))
	assert.False(t, pred(row("A", "CISO", "20240101", "10")))
}

func TestCompileOperators(t *testing.T) {
	tests := []struct {
		name       string
		constraint Constraint
		cell       string
		expected   bool
	}{
		{"GtNumeric", Gt("20240101"), "20240315", true},
		{"GtNumericFalse", Gt("20240101"), "20231231", false},
		{"GeEqual", Ge("10"), "10", true},
		{"LtNumeric", Lt("100"), "99.5", true},
		{"LeEqual", Le("42.15"), "42.15", true},
		{"Ne", Ne("PJM"), "CISO", true},
		{"NeFalse", Ne("PJM"), "PJM", false},
		{"NumericNotLexicographic", Gt("9"), "10", true},
		{"StringFallback", Gt("APPLE"), "BANANA", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := Compile(Spec{"trade_date": tt.constraint}, columns)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, pred(row("A", "PJM", tt.cell, "10")))
		})
	}
}

func TestCompileBetween(t *testing.T) {
	t.Run("Inclusive", func(t *testing.T) {
		pred, err := Compile(Spec{"trade_date": Between("20240101", "20240331", true)}, columns)
		require.NoError(t, err)

		assert.True(t, pred(row("A", "PJM", "20240101", "10")))
		assert.True(t, pred(row("A", "PJM", "20240215", "10")))
		assert.True(t, pred(row("A", "PJM", "20240331", "10")))
		assert.False(t, pred(row("A", "PJM", "20240401", "10")))
	})

	t.Run("Exclusive", func(t *testing.T) {
		pred, err := Compile(Spec{"trade_date": Between("20240101", "20240331", false)}, columns)
		require.NoError(t, err)

		assert.False(t, pred(row("A", "PJM", "20240101", "10")))
		assert.True(t, pred(row("A", "PJM", "20240215", "10")))
		assert.False(t, pred(row("A", "PJM", "20240331", "10")))
	})
}

func TestCompileConjunction(t *testing.T) {
	pred, err := Compile(Spec{
		"point_of_delivery_balancing_authority": Eq("CISO"),
		"price":                                 Gt("50"),
	}, columns)
	require.NoError(t, err)

	assert.True(t, pred(row("A", "CISO", "20240101", "60")))
	assert.False(t, pred(row("A", "CISO", "20240101", "40")))
	assert.False(t, pred(row("A", "PJM", "20240101", "60")))
}

func TestCompileErrors(t *testing.T) {
	t.Run("UnknownColumn", func(t *testing.T) {
		_, err := Compile(Spec{"no_such_column": Eq("x")}, columns)
		assert.Error(t, err)
	})

	t.Run("BadBetween", func(t *testing.T) {
		_, err := Compile(Spec{"price": {op: OpBetween, values: []string{"1"}}}, columns)
		assert.Error(t, err)
	})

	t.Run("UnknownOp", func(t *testing.T) {
		_, err := Compile(Spec{"price": {op: "almost"}}, columns)
		assert.Error(t, err)
	})
}

func TestCompileEmptySpecKeepsAll(t *testing.T) {
	pred, err := Compile(nil, columns)
	require.NoError(t, err)
	assert.True(t, pred(row("A", "PJM", "20240101", "10")))
}

func TestShortRowRejected(t *testing.T) {
	pred, err := Compile(Spec{"price": Eq("10")}, columns)
	require.NoError(t, err)
	assert.False(t, pred([]string{"A", "PJM"}))
}

func TestParseArg(t *testing.T) {
	tests := []struct {
		arg    string
		column string
		want   Constraint
	}{
		{"point_of_delivery_balancing_authority=PJM", "point_of_delivery_balancing_authority", Eq("PJM")},
		{"point_of_delivery_balancing_authority=PJM,MISO", "point_of_delivery_balancing_authority", In("PJM", "MISO")},
		{"trade_date=gt:20240101", "trade_date", Gt("20240101")},
		{"trade_date=between:20240101..20240331", "trade_date", Between("20240101", "20240331", true)},
		{"price=ne:0", "price", Ne("0")},
		{"seller_company_name=Foo: Bar Inc", "seller_company_name", Eq("Foo: Bar Inc")},
		{"seller_company_name=almost:5", "seller_company_name", Eq("almost:5")},
		{"seller_company_name=A: B,C: D", "seller_company_name", In("A: B", "C: D")},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			column, constraint, err := ParseArg(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.column, column)
			assert.Equal(t, tt.want, constraint)
		})
	}
}

func TestParseArgErrors(t *testing.T) {
	for _, arg := range []string{"", "nofilter", "=PJM", "trade_date=between:20240101"} {
		t.Run(arg, func(t *testing.T) {
			_, _, err := ParseArg(arg)
			assert.Error(t, err)
		})
	}
}
