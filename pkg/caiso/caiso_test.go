package caiso

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resourceCSV = `RESOURCE_ID,RESOURCE_NAME
GEYSER_5_UNIT1,Pacific Power LLC
GEYSER_5_UNIT2,Pacific Power LLC
SOLAR_2_PV1,Desert Sun Energy Inc.
,
WIND_7_WT3,High Plains Wind
`

func TestReadResources(t *testing.T) {
	resources, err := ReadResources(strings.NewReader(resourceCSV), "test.csv")
	require.NoError(t, err)
	require.Len(t, resources, 4)

	assert.Equal(t, Resource{ResourceID: "GEYSER_5_UNIT1", Name: "Pacific Power LLC"}, resources[0])
	assert.Equal(t, "desert sun energy inc", resources[2].JoinKey())
}

func TestReadResourcesHeaderVariants(t *testing.T) {
	csv := "Resource ID,Participant Name\nR1,Seller One\n"
	resources, err := ReadResources(strings.NewReader(csv), "test.csv")
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "R1", resources[0].ResourceID)
}

func TestReadResourcesMissingNameColumn(t *testing.T) {
	_, err := ReadResources(strings.NewReader("a,b\n1,2\n"), "test.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no resource name column")
}

func TestLoadResources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources.csv")
	require.NoError(t, os.WriteFile(path, []byte(resourceCSV), 0o644))

	resources, err := LoadResources(path)
	require.NoError(t, err)
	assert.Len(t, resources, 4)
}

func TestMatcherMatch(t *testing.T) {
	resources, err := ReadResources(strings.NewReader(resourceCSV), "test.csv")
	require.NoError(t, err)
	m := NewMatcher(resources)

	// EQR filing spells the seller with punctuation and extra spaces
	matched := m.Match("  Pacific  Power, L.L.C. ")
	require.Len(t, matched, 2)
	assert.Equal(t, "GEYSER_5_UNIT1", matched[0].ResourceID)

	assert.Nil(t, m.Match("No Such Seller"))
}

func TestMatchSellers(t *testing.T) {
	resources, err := ReadResources(strings.NewReader(resourceCSV), "test.csv")
	require.NoError(t, err)
	m := NewMatcher(resources)

	report := m.MatchSellers([]string{
		"Pacific Power, LLC",
		"PACIFIC POWER LLC", // same seller, different spelling
		"Desert Sun Energy, Inc.",
		"Unknown Trading Co.",
	})

	require.Len(t, report.Matched, 2)
	assert.Equal(t, "desert sun energy inc", report.Matched[0].JoinKey)
	assert.Equal(t, "pacific power llc", report.Matched[1].JoinKey)
	assert.Len(t, report.Matched[1].Resources, 2)
	// duplicate spelling reported once, under its first form
	assert.Equal(t, "Pacific Power, LLC", report.Matched[1].Seller)

	assert.Equal(t, []string{"Unknown Trading Co."}, report.Unmatched)
}
