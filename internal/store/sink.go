package store

import (
	"context"
	"fmt"

	"github.com/gridscope/ferceqr/pkg/eqr"
	"github.com/gridscope/ferceqr/pkg/etl"
)

// Sink adapts the store to the preprocessor's sink interface so a run can
// load its chunks into SQLite as they flush.
type Sink struct {
	ctx     context.Context
	store   *Store
	quarter eqr.Quarter
}

// NewSink creates a sink persisting chunks for one quarter. The context
// bounds the inserts issued during the run.
func NewSink(ctx context.Context, store *Store, quarter eqr.Quarter) *Sink {
	return &Sink{ctx: ctx, store: store, quarter: quarter}
}

// WriteChunk implements etl.Sink.
func (s *Sink) WriteChunk(_ int, records []etl.Record) error {
	var txs []eqr.Transaction
	var contracts []eqr.Contract
	for _, record := range records {
		switch r := record.(type) {
		case eqr.Transaction:
			txs = append(txs, r)
		case eqr.Contract:
			contracts = append(contracts, r)
		default:
			return fmt.Errorf("unsupported record type %T", record)
		}
	}

	if err := s.store.SaveTransactions(s.ctx, s.quarter, txs); err != nil {
		return err
	}
	return s.store.SaveContracts(s.ctx, s.quarter, contracts)
}

// Close implements etl.Sink. The store outlives the run, so there is
// nothing to flush.
func (s *Sink) Close() error {
	return nil
}
