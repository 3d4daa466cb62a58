// Package normalize canonicalizes entity name strings so that records from
// different reporting systems can be joined on a common key. Its main use is
// aligning FERC EQR seller company names with CAISO generation resource and
// scheduling coordinator names, which disagree on case, punctuation, and
// whitespace for the same entity.
package normalize

import "strings"

// punctuation stripped from join keys. EQR filings write "Co., Inc." where
// CAISO writes "Co Inc"; removing commas and periods reconciles the two.
var punctuation = strings.NewReplacer(",", "", ".", "")

// Seller normalizes a seller company name into a join key. It removes
// commas and periods, trims leading and trailing whitespace, collapses
// internal whitespace runs to a single space, and lowercases the result.
// Punctuation is stripped before the collapse so that freestanding
// punctuation tokens ("Acme . Power") cannot leave whitespace behind.
//
// The transform is total over all inputs and idempotent: applying it twice
// yields the same string as applying it once.
func Seller(name string) string {
	stripped := punctuation.Replace(name)
	return strings.ToLower(strings.Join(strings.Fields(stripped), " "))
}

// JoinKeys normalizes every name in the slice, preserving order. Duplicates
// that normalization introduces are kept; callers that need set semantics
// should dedupe afterward.
func JoinKeys(names []string) []string {
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = Seller(name)
	}
	return keys
}
