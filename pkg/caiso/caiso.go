// Package caiso loads CAISO generation resource data and matches it
// against EQR sellers. EQR filers and the CAISO master file write the same
// company differently ("Pacific Power, LLC" vs "PACIFIC POWER LLC"), so
// both sides are reduced to a normalized join key before matching.
package caiso

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gridscope/ferceqr/pkg/errors"
	"github.com/gridscope/ferceqr/pkg/normalize"
)

// Resource is one row of a CAISO generation resource list.
type Resource struct {
	ResourceID string
	Name       string
}

// JoinKey returns the normalized resource name used for matching.
func (r Resource) JoinKey() string {
	return normalize.Seller(r.Name)
}

// Column headers recognized in resource CSVs, checked case-insensitively.
var (
	idHeaders   = []string{"resource_id", "resource id", "res_id"}
	nameHeaders = []string{"resource_name", "resource name", "participant_name", "participant name", "name"}
)

// LoadResources reads a CAISO resource CSV. The file must carry a header
// row naming a resource ID column and a resource name column; rows with an
// empty name are dropped.
func LoadResources(path string) ([]Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer file.Close()
	return ReadResources(file, path)
}

// ReadResources parses resource CSV content from r. The source name is
// used in error messages only.
func ReadResources(r io.Reader, source string) ([]Resource, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.WrapParse("csv", source, err)
	}
	idCol := findColumn(header, idHeaders)
	nameCol := findColumn(header, nameHeaders)
	if nameCol < 0 {
		return nil, errors.NewValidationError("header", header, "no resource name column")
	}

	var resources []Resource
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", source, err)
		}

		resource := Resource{Name: strings.TrimSpace(field(row, nameCol))}
		if resource.Name == "" {
			continue
		}
		if idCol >= 0 {
			resource.ResourceID = strings.TrimSpace(field(row, idCol))
		}
		resources = append(resources, resource)
	}
	return resources, nil
}

func findColumn(header, candidates []string) int {
	for i, column := range header {
		column = strings.TrimSpace(column)
		for _, candidate := range candidates {
			if strings.EqualFold(column, candidate) {
				return i
			}
		}
	}
	return -1
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Matcher indexes CAISO resources by normalized name for seller joins.
type Matcher struct {
	byKey map[string][]Resource
}

// NewMatcher builds a matcher over the given resources.
func NewMatcher(resources []Resource) *Matcher {
	byKey := make(map[string][]Resource)
	for _, resource := range resources {
		key := resource.JoinKey()
		if key == "" {
			continue
		}
		byKey[key] = append(byKey[key], resource)
	}
	return &Matcher{byKey: byKey}
}

// Match returns the resources whose normalized name equals the normalized
// form of seller, or nil when the seller has no CAISO presence.
func (m *Matcher) Match(seller string) []Resource {
	return m.byKey[normalize.Seller(seller)]
}

// SellerMatch pairs one seller with its CAISO resources.
type SellerMatch struct {
	Seller    string
	JoinKey   string
	Resources []Resource
}

// Report summarizes a matching run over a set of EQR sellers.
type Report struct {
	Matched   []SellerMatch
	Unmatched []string
}

// MatchSellers joins each distinct seller name against the resource index.
// Sellers that normalize to the same key are reported once, under the
// first spelling seen. Output is sorted by join key.
func (m *Matcher) MatchSellers(sellers []string) Report {
	keys := normalize.JoinKeys(sellers)
	seen := make(map[string]bool)
	var report Report

	for i, seller := range sellers {
		key := keys[i]
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		if resources := m.byKey[key]; len(resources) > 0 {
			report.Matched = append(report.Matched, SellerMatch{
				Seller:    seller,
				JoinKey:   key,
				Resources: resources,
			})
		} else {
			report.Unmatched = append(report.Unmatched, seller)
		}
	}

	sort.Slice(report.Matched, func(i, j int) bool {
		return report.Matched[i].JoinKey < report.Matched[j].JoinKey
	})
	sort.Slice(report.Unmatched, func(i, j int) bool {
		return normalize.Seller(report.Unmatched[i]) < normalize.Seller(report.Unmatched[j])
	})
	return report
}
