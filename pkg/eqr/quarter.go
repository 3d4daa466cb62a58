// Package eqr defines the FERC Electric Quarterly Report domain model:
// quarters, the transactions and contracts record types, and the
// canonicalization rules for their enumerated columns.
package eqr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gridscope/ferceqr/pkg/errors"
)

var (
	quarterPattern  = regexp.MustCompile(`(?i)^(\d{4})[ _-]?q([1-4])$`)
	filenamePattern = regexp.MustCompile(`(?i)^(CSV|XML)_(\d{4})_Q([1-4])\.zip$`)
)

// Quarter identifies one FERC EQR reporting period.
type Quarter struct {
	Year int
	Q    int
}

// ParseQuarter parses a quarter from user input. Accepted forms include
// "2025 q2", "2025Q2", "2025_q2", and quarterly archive file names such as
// "CSV_2025_Q2.zip".
func ParseQuarter(s string) (Quarter, error) {
	s = strings.TrimSpace(s)

	m := quarterPattern.FindStringSubmatch(s)
	if m == nil {
		if fm := filenamePattern.FindStringSubmatch(s); fm != nil {
			m = []string{fm[0], fm[2], fm[3]}
		}
	}
	if m == nil {
		return Quarter{}, errors.NewValidationError("quarter", s, "unrecognized quarter format")
	}

	year, _ := strconv.Atoi(m[1])
	q, _ := strconv.Atoi(m[2])
	return Quarter{Year: year, Q: q}, nil
}

// String returns the compact form, e.g. "2025Q2".
func (q Quarter) String() string {
	return fmt.Sprintf("%dQ%d", q.Year, q.Q)
}

// ArchiveName returns the local file name a downloaded filing is saved
// under, e.g. "csv_2025_q2.zip". Format is "csv" or "xml".
func (q Quarter) ArchiveName(format string) string {
	return fmt.Sprintf("%s_%d_q%d.zip", strings.ToLower(format), q.Year, q.Q)
}

// RemoteFilePattern returns a pattern matching the published archive file
// name for this quarter in the requested format, as it appears in Report
// Viewer download links (e.g. "CSV_2025_Q2.zip").
func (q Quarter) RemoteFilePattern(format string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?i)%s_%d_Q%d\.zip$`, regexp.QuoteMeta(strings.ToUpper(format)), q.Year, q.Q))
}
