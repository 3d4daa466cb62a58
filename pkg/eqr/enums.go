package eqr

import (
	"strings"

	"github.com/gridscope/ferceqr/pkg/errors"
)

// Enumerated column values as published in the EQR data dictionary. The
// canonical form for most columns is uppercase; filers frequently submit
// title case, so canonicalization uppercases before validating.

// ClassNames are the valid transaction/contract class codes.
var ClassNames = newEnum(
	"F",   // Firm
	"NF",  // Non-firm
	"UP",  // Unit power sale
	"BA",  // Billing adjustment
	"N/A", // Not applicable
)

// TermNames are the valid term codes.
var TermNames = newEnum(
	"LT",  // Long-term
	"ST",  // Short-term
	"N/A", // Not applicable
)

// IncrementNames are the valid delivery increment codes.
var IncrementNames = newEnum(
	"5",  // Five-minute
	"15", // Fifteen-minute
	"H",  // Hourly
	"D",  // Daily
	"W",  // Weekly
	"M",  // Monthly
	"Y",  // Yearly
	"N/A",
)

// IncrementPeakingNames are the valid peaking designation codes.
var IncrementPeakingNames = newEnum(
	"FP", // Full-period
	"OP", // Off-peak
	"P",  // Peak
	"N/A",
)

// ExchangeBrokerageServices are the valid exchange/brokerage venues.
var ExchangeBrokerageServices = newEnum("BROKER", "ICE", "NODAL", "NYMEX")

// RateTypes are the valid type_of_rate values. The data dictionary lists
// these in title case but most columns are uppercase, so we keep these
// uppercase for consistency.
var RateTypes = newEnum("FIXED", "FORMULA", "ELECTRIC INDEX", "RTO/ISO")

// RateUnits are the valid rate denomination codes.
var RateUnits = newEnum(
	"$/KV",
	"$/KVA",
	"$/KVR",
	"$/KW",
	"$/KWH",
	"$/KW-DAY",
	"$/KW-MO",
	"$/KW-WK",
	"$/KW-YR",
	"$/MW",
	"$/MWH",
	"$/MW-DAY",
	"$/MW-MO",
	"$/MW-WK",
	"$/MW-YR",
	"$/MVAR-YR",
	"$/RKVA",
	"CENTS",
	"CENTS/KVR",
	"CENTS/KWH",
	"FLAT RATE", // rate not specified in any other units
)

// TimeZones are the valid two-letter time zone codes.
var TimeZones = newEnum(
	"AD", "AP", "AS", // atlantic daylight/prevailing/standard
	"CD", "CP", "CS", // central
	"ED", "EP", "ES", // eastern
	"MD", "MP", "MS", // mountain
	"PD", "PP", "PS", // pacific
)

// ProductNames are the valid product designations.
var ProductNames = newEnum(
	"BLACK START SERVICE",
	"BOOKED OUT POWER",
	"CAPACITY",
	"CUSTOMER CHARGE",
	"DIRECT ASSIGNMENT FACILITIES CHARGE",
	"EMERGENCY ENERGY",
	"ENERGY",
	"ENERGY IMBALANCE",
	"EXCHANGE",
	"FUEL CHARGE",
	"GENERATOR IMBALANCE",
	"GRANDFATHERED BUNDLED",
	"INTERCONNECTION AGREEMENT",
	"MEMBERSHIP AGREEMENT",
	"MUST RUN AGREEMENT",
	"NEGOTIATED-RATE TRANSMISSION",
	"NETWORK",
	"NETWORK OPERATING AGREEMENT",
	"OTHER",
	"POINT-TO-POINT AGREEMENT",
	"PRIMARY FREQUENCY RESPONSE",
	"REACTIVE SUPPLY & VOLTAGE CONTROL",
	"REAL POWER TRANSMISSION LOSS",
	"REASSIGNMENT AGREEMENT",
	"REGULATION & FREQUENCY RESPONSE",
	"REQUIREMENTS SERVICE",
	"SCHEDULE SYSTEM CONTROL & DISPATCH",
	"SPINNING RESERVE",
	"SUPPLEMENTAL RESERVE",
	"SYSTEM OPERATING AGREEMENTS",
	"TOLLING ENERGY",
	"TRANSMISSION OWNERS AGREEMENT",
	"UPLIFT",
)

// ProductTypeNames are the valid contract product type values. Unlike the
// other columns these are published mixed-case and filed mixed-case.
var ProductTypeNames = newEnum(
	"CB - Cost Based",
	"CR - Capacity Reassignment",
	"MB - Market Based",
	"T - Transmission",
	"NPU - Non-Public Utility",
	"Other",
)

// Enum is a closed set of valid values for a categorical column.
type Enum struct {
	values map[string]bool
}

func newEnum(values ...string) Enum {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return Enum{values: set}
}

// Contains reports whether v is a member of the enum.
func (e Enum) Contains(v string) bool {
	return e.values[v]
}

// canonical validates a raw value against the enum, optionally uppercasing
// it first. Empty values pass through: many categorical columns are blank
// for rows where they do not apply.
func (e Enum) canonical(column, raw string, upper bool) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", nil
	}
	if upper {
		v = strings.ToUpper(v)
	}
	if !e.values[v] {
		return "", errors.NewValidationError(column, raw, "value not in enumeration")
	}
	return v, nil
}

// CanonicalClassName validates a class_name value.
func CanonicalClassName(raw string) (string, error) {
	return ClassNames.canonical("class_name", raw, true)
}

// CanonicalTermName validates a term_name value.
func CanonicalTermName(raw string) (string, error) {
	return TermNames.canonical("term_name", raw, true)
}

// CanonicalIncrementName validates an increment_name value.
func CanonicalIncrementName(raw string) (string, error) {
	return IncrementNames.canonical("increment_name", raw, true)
}

// CanonicalIncrementPeakingName validates an increment_peaking_name value.
func CanonicalIncrementPeakingName(raw string) (string, error) {
	return IncrementPeakingNames.canonical("increment_peaking_name", raw, true)
}

// CanonicalExchangeBrokerage validates an exchange_brokerage_service value.
func CanonicalExchangeBrokerage(raw string) (string, error) {
	return ExchangeBrokerageServices.canonical("exchange_brokerage_service", raw, true)
}

// CanonicalRateType validates a type_of_rate value. The data dictionary
// lists these title case but some filers submit uppercase; forcing uppercase
// keeps the column consistent with the rest of the categoricals.
func CanonicalRateType(raw string) (string, error) {
	return RateTypes.canonical("type_of_rate", raw, true)
}

// CanonicalRateUnits validates a rate_units value.
func CanonicalRateUnits(raw string) (string, error) {
	return RateUnits.canonical("rate_units", raw, true)
}

// CanonicalProductName validates a product_name value.
func CanonicalProductName(raw string) (string, error) {
	return ProductNames.canonical("product_name", raw, true)
}

// CanonicalProductTypeName validates a product_type_name value.
func CanonicalProductTypeName(raw string) (string, error) {
	return ProductTypeNames.canonical("product_type_name", raw, false)
}

// CanonicalTimeZone validates a time_zone value. Some filers write the
// three-letter form ("EST") instead of the two-letter code ("ES"); the value
// is trimmed to two characters before validation.
func CanonicalTimeZone(raw string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if len(v) > 2 {
		v = v[:2]
	}
	return TimeZones.canonical("time_zone", v, false)
}
