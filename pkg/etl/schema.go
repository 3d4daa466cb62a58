// Package etl preprocesses the doubly-zipped CSV archives published for the
// FERC EQR program. A quarterly archive is a ZIP of per-seller ZIPs; each
// seller ZIP holds one CSV per record type (transactions, contracts,
// ident, indexPub). The processor iterates the outer archive, extracts the
// requested record type from each seller, decodes and parses it against a
// fixed schema, applies row filters, and hands aligned records to one or
// more sinks in numbered chunks.
package etl

import (
	"regexp"

	"github.com/gridscope/ferceqr/pkg/eqr"
)

// Record is one schema-aligned row of an EQR dataset.
type Record interface {
	// Row serializes the record to CSV fields in schema column order.
	Row() []string

	// SellerJoinKey returns the normalized seller name for CAISO joins.
	SellerJoinKey() string
}

// Schema describes one EQR record type: how to find its file inside a
// seller ZIP, its raw column order, and how to align a raw row.
type Schema struct {
	// RecordType names the dataset ("transactions", "contracts").
	RecordType string

	// Pattern matches the record type's file name inside a seller ZIP.
	Pattern *regexp.Regexp

	// Columns is the raw CSV column order. Filters compile against these
	// names.
	Columns []string

	// Align parses and canonicalizes one raw row.
	Align func(row []string) (Record, error)
}

// Transactions is the schema for *_transactions.csv datasets.
var Transactions = &Schema{
	RecordType: "transactions",
	Pattern:    regexp.MustCompile(`(?i)^.+_transactions\.csv$`),
	Columns:    eqr.TransactionColumns,
	Align: func(row []string) (Record, error) {
		return eqr.ParseTransaction(row)
	},
}

// Contracts is the schema for *_contracts.csv datasets.
var Contracts = &Schema{
	RecordType: "contracts",
	Pattern:    regexp.MustCompile(`(?i)^.+_contracts\.csv$`),
	Columns:    eqr.ContractColumns,
	Align: func(row []string) (Record, error) {
		return eqr.ParseContract(row)
	},
}
