package eqr

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gridscope/ferceqr/pkg/errors"
	"github.com/gridscope/ferceqr/pkg/normalize"
)

// ContractColumns is the column order of a seller's *_contracts.csv file
// inside a quarterly archive.
var ContractColumns = []string{
	"contract_unique_id",
	"seller_company_name",
	"seller_history_name",
	"customer_company_name",
	"contract_affiliate",
	"ferc_tariff_reference",
	"contract_service_agreement_id",
	"contract_execution_date",
	"commencement_date_of_contract_term",
	"contract_termination_date",
	"actual_termination_date",
	"extension_provision_description",
	"class_name",
	"term_name",
	"increment_name",
	"increment_peaking_name",
	"product_type_name",
	"product_name",
	"quantity",
	"units",
	"rate",
	"rate_minimum",
	"rate_maximum",
	"rate_description",
	"rate_units",
	"point_of_receipt_balancing_authority",
	"point_of_receipt_specific_location",
	"point_of_delivery_balancing_authority",
	"point_of_delivery_specific_location",
	"begin_date",
	"end_date",
}

// Contract is one row of an EQR contracts dataset after schema alignment.
type Contract struct {
	UniqueID                 string
	SellerCompanyName        string
	SellerHistoryName        string
	CustomerCompanyName      string
	ContractAffiliate        string
	FERCTariffReference      string
	ServiceAgreementID       string
	ExecutionDate            time.Time
	CommencementDate         time.Time
	TerminationDate          time.Time
	ActualTerminationDate    time.Time
	ExtensionProvision       string
	ClassName                string
	TermName                 string
	IncrementName            string
	IncrementPeakingName     string
	ProductTypeName          string
	ProductName              string
	Quantity                 decimal.Decimal
	Units                    string
	Rate                     decimal.Decimal
	RateMinimum              decimal.Decimal
	RateMaximum              decimal.Decimal
	RateDescription          string
	RateUnits                string
	PORBalancingAuthority    string
	PORSpecificLocation      string
	PODBalancingAuthority    string
	PODSpecificLocation      string
	BeginDate                time.Time
	EndDate                  time.Time
}

// ParseContract aligns one raw CSV row (in ContractColumns order) into a
// Contract, canonicalizing and validating its enumerated columns.
func ParseContract(row []string) (Contract, error) {
	if len(row) != len(ContractColumns) {
		return Contract{}, errors.NewValidationError("row", len(row),
			fmt.Sprintf("expected %d columns, got %d", len(ContractColumns), len(row)))
	}

	c := Contract{
		UniqueID:              row[0],
		SellerCompanyName:     row[1],
		SellerHistoryName:     row[2],
		CustomerCompanyName:   row[3],
		ContractAffiliate:     row[4],
		FERCTariffReference:   row[5],
		ServiceAgreementID:    row[6],
		ExtensionProvision:    row[11],
		Units:                 row[19],
		RateDescription:       row[23],
		PORBalancingAuthority: row[25],
		PORSpecificLocation:   row[26],
		PODBalancingAuthority: row[27],
		PODSpecificLocation:   row[28],
	}

	var err error
	if c.ExecutionDate, err = parseTimestamp("contract_execution_date", row[7]); err != nil {
		return Contract{}, err
	}
	if c.CommencementDate, err = parseTimestamp("commencement_date_of_contract_term", row[8]); err != nil {
		return Contract{}, err
	}
	if c.TerminationDate, err = parseTimestamp("contract_termination_date", row[9]); err != nil {
		return Contract{}, err
	}
	if c.ActualTerminationDate, err = parseTimestamp("actual_termination_date", row[10]); err != nil {
		return Contract{}, err
	}
	if c.BeginDate, err = parseTimestamp("begin_date", row[29]); err != nil {
		return Contract{}, err
	}
	if c.EndDate, err = parseTimestamp("end_date", row[30]); err != nil {
		return Contract{}, err
	}

	if c.ClassName, err = CanonicalClassName(row[12]); err != nil {
		return Contract{}, err
	}
	if c.TermName, err = CanonicalTermName(row[13]); err != nil {
		return Contract{}, err
	}
	if c.IncrementName, err = CanonicalIncrementName(row[14]); err != nil {
		return Contract{}, err
	}
	if c.IncrementPeakingName, err = CanonicalIncrementPeakingName(row[15]); err != nil {
		return Contract{}, err
	}
	if c.ProductTypeName, err = CanonicalProductTypeName(row[16]); err != nil {
		return Contract{}, err
	}
	if c.ProductName, err = CanonicalProductName(row[17]); err != nil {
		return Contract{}, err
	}
	if c.RateUnits, err = CanonicalRateUnits(row[24]); err != nil {
		return Contract{}, err
	}

	if c.Quantity, err = parseDecimal("quantity", row[18]); err != nil {
		return Contract{}, err
	}
	if c.Rate, err = parseDecimal("rate", row[20]); err != nil {
		return Contract{}, err
	}
	if c.RateMinimum, err = parseDecimal("rate_minimum", row[21]); err != nil {
		return Contract{}, err
	}
	if c.RateMaximum, err = parseDecimal("rate_maximum", row[22]); err != nil {
		return Contract{}, err
	}

	return c, nil
}

// Row serializes the aligned contract back to CSV fields in ContractColumns
// order.
func (c Contract) Row() []string {
	return []string{
		c.UniqueID,
		c.SellerCompanyName,
		c.SellerHistoryName,
		c.CustomerCompanyName,
		c.ContractAffiliate,
		c.FERCTariffReference,
		c.ServiceAgreementID,
		formatTimestamp(c.ExecutionDate),
		formatTimestamp(c.CommencementDate),
		formatTimestamp(c.TerminationDate),
		formatTimestamp(c.ActualTerminationDate),
		c.ExtensionProvision,
		c.ClassName,
		c.TermName,
		c.IncrementName,
		c.IncrementPeakingName,
		c.ProductTypeName,
		c.ProductName,
		c.Quantity.String(),
		c.Units,
		c.Rate.String(),
		c.RateMinimum.String(),
		c.RateMaximum.String(),
		c.RateDescription,
		c.RateUnits,
		c.PORBalancingAuthority,
		c.PORSpecificLocation,
		c.PODBalancingAuthority,
		c.PODSpecificLocation,
		formatTimestamp(c.BeginDate),
		formatTimestamp(c.EndDate),
	}
}

// SellerJoinKey returns the normalized seller name used to join against
// CAISO resource data.
func (c Contract) SellerJoinKey() string {
	return normalize.Seller(c.SellerCompanyName)
}
