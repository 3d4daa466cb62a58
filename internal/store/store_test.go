package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridscope/ferceqr/pkg/eqr"
	"github.com/gridscope/ferceqr/pkg/etl"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "eqr.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testTransaction(id, seller, ba, price string, trade time.Time) eqr.Transaction {
	return eqr.Transaction{
		UniqueID:              id,
		SellerCompanyName:     seller,
		CustomerCompanyName:   "Buyer Co",
		PODBalancingAuthority: ba,
		ClassName:             "F",
		ProductName:           "ENERGY",
		TradeDate:             trade,
		Quantity:              decimal.RequireFromString("25"),
		Price:                 decimal.RequireFromString(price),
		RateUnits:             "$/MWH",
	}
}

func TestStoreTransactions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	q2 := eqr.Quarter{Year: 2025, Q: 2}

	march := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveTransactions(ctx, q2, []eqr.Transaction{
		testTransaction("T1", "Seller A, Inc.", "CISO", "42.15", march),
		testTransaction("T2", "SELLER A INC", "CISO", "50.00", april),
		testTransaction("T3", "Seller B LLC", "PJM", "40.00", march),
	}))

	count, err := s.CountByQuarter(ctx, q2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	// "Seller A, Inc." and "SELLER A INC" normalize to the same key
	txs, err := s.TransactionsBySeller(ctx, "seller a inc")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "T2", txs[0].UniqueID) // newest trade first
	assert.Equal(t, "42.15", txs[1].Price)

	byBA, err := s.TransactionsByBalancingAuthority(ctx, q2, "PJM")
	require.NoError(t, err)
	require.Len(t, byBA, 1)
	assert.Equal(t, "Seller B LLC", byBA[0].SellerName)

	keys, err := s.SellerJoinKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"seller a inc", "seller b llc"}, keys)
}

func TestStoreContracts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveContracts(ctx, eqr.Quarter{Year: 2025, Q: 1}, []eqr.Contract{
		{
			UniqueID:          "C1",
			SellerCompanyName: "Pacific Power, L.L.C.",
			ProductName:       "ENERGY",
			Rate:              decimal.RequireFromString("12.5"),
		},
	}))

	contracts, err := s.ContractsBySeller(ctx, "pacific power llc")
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, "2025Q1", contracts[0].Quarter)
	assert.Equal(t, "12.5", contracts[0].Rate)
}

func TestStoreEmptySaves(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	q := eqr.Quarter{Year: 2025, Q: 2}

	assert.NoError(t, s.SaveTransactions(ctx, q, nil))
	assert.NoError(t, s.SaveContracts(ctx, q, nil))
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestSink(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	q := eqr.Quarter{Year: 2025, Q: 2}

	sink := NewSink(ctx, s, q)
	march := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	records := []etl.Record{
		testTransaction("T1", "Seller A", "CISO", "10", march),
		testTransaction("T2", "Seller A", "CISO", "20", march),
	}
	require.NoError(t, sink.WriteChunk(0, records))
	require.NoError(t, sink.Close())

	count, err := s.CountByQuarter(ctx, q)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
