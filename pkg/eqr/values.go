package eqr

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gridscope/ferceqr/pkg/errors"
)

// Raw date layouts used in EQR CSV files.
const (
	timestampLayout = "200601021504" // yyyymmddHHMM
	dateLayout      = "20060102"     // yyyymmdd
)

// Normalized layouts written to output chunks.
const (
	outTimestampLayout = "2006-01-02T15:04"
	outDateLayout      = "2006-01-02"
)

// parseTimestamp parses a yyyymmddHHMM column value. Blank values map to the
// zero time: several date columns are empty for open-ended records.
func parseTimestamp(column, raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timestampLayout, v)
	if err != nil {
		return time.Time{}, errors.NewValidationError(column, raw, "not a yyyymmddHHMM timestamp")
	}
	return t, nil
}

// parseDate parses a yyyymmdd column value, with blanks mapping to zero.
func parseDate(column, raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, errors.NewValidationError(column, raw, "not a yyyymmdd date")
	}
	return t, nil
}

// parseDecimal parses a numeric column value, with blanks mapping to zero.
func parseDecimal(column, raw string) (decimal.Decimal, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return decimal.Decimal{}, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, errors.NewValidationError(column, raw, "not a number")
	}
	return d, nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(outTimestampLayout)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(outDateLayout)
}
