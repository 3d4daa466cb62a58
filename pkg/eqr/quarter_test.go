package eqr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridscope/ferceqr/pkg/errors"
)

func TestParseQuarter(t *testing.T) {
	tests := []struct {
		input    string
		expected Quarter
	}{
		{"2025 q2", Quarter{2025, 2}},
		{"2025Q2", Quarter{2025, 2}},
		{"2025_q4", Quarter{2025, 4}},
		{"2019-Q1", Quarter{2019, 1}},
		{" 2025 Q3 ", Quarter{2025, 3}},
		{"CSV_2025_Q2.zip", Quarter{2025, 2}},
		{"xml_2019_q3.ZIP", Quarter{2019, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			q, err := ParseQuarter(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, q)
		})
	}
}

func TestParseQuarterInvalid(t *testing.T) {
	for _, input := range []string{"", "2025", "2025 q5", "q2 2025", "2025 quarter 2", "25Q2"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseQuarter(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidInput))
		})
	}
}

func TestQuarterString(t *testing.T) {
	assert.Equal(t, "2025Q2", Quarter{2025, 2}.String())
}

func TestQuarterArchiveName(t *testing.T) {
	q := Quarter{2025, 2}
	assert.Equal(t, "csv_2025_q2.zip", q.ArchiveName("csv"))
	assert.Equal(t, "xml_2025_q2.zip", q.ArchiveName("XML"))
}

func TestQuarterRemoteFilePattern(t *testing.T) {
	pat := Quarter{2025, 2}.RemoteFilePattern("csv")
	assert.True(t, pat.MatchString("https://eqrreportviewer.ferc.gov/files/CSV_2025_Q2.zip"))
	assert.False(t, pat.MatchString("https://eqrreportviewer.ferc.gov/files/CSV_2025_Q1.zip"))
	assert.False(t, pat.MatchString("XML_2025_Q2.zip"))
}
