package eqr

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gridscope/ferceqr/pkg/errors"
	"github.com/gridscope/ferceqr/pkg/normalize"
)

// TransactionColumns is the column order of a seller's *_transactions.csv
// file inside a quarterly archive.
var TransactionColumns = []string{
	"transaction_unique_id",
	"seller_company_name",
	"customer_company_name",
	"ferc_tariff_reference",
	"contract_service_agreement",
	"transaction_unique_identifier",
	"transaction_begin_date",
	"transaction_end_date",
	"trade_date",
	"exchange_brokerage_service",
	"type_of_rate",
	"time_zone",
	"point_of_delivery_balancing_authority",
	"point_of_delivery_specific_location",
	"class_name",
	"term_name",
	"increment_name",
	"increment_peaking_name",
	"product_name",
	"transaction_quantity",
	"price",
	"rate_units",
	"standardized_quantity",
	"standardized_price",
	"total_transmission_charge",
	"total_transaction_charge",
}

// Transaction is one row of an EQR transactions dataset after schema
// alignment: categorical columns canonicalized, dates parsed, and numeric
// columns held as decimals.
type Transaction struct {
	UniqueID                 string
	SellerCompanyName        string
	CustomerCompanyName      string
	FERCTariffReference      string
	ContractServiceAgreement string
	UniqueIdentifier         string
	BeginDate                time.Time
	EndDate                  time.Time
	TradeDate                time.Time
	ExchangeBrokerageService string
	TypeOfRate               string
	TimeZone                 string
	PODBalancingAuthority    string
	PODSpecificLocation      string
	ClassName                string
	TermName                 string
	IncrementName            string
	IncrementPeakingName     string
	ProductName              string
	Quantity                 decimal.Decimal
	Price                    decimal.Decimal
	RateUnits                string
	StandardizedQuantity     decimal.Decimal
	StandardizedPrice        decimal.Decimal
	TotalTransmissionCharge  decimal.Decimal
	TotalTransactionCharge   decimal.Decimal
}

// ParseTransaction aligns one raw CSV row (in TransactionColumns order) into
// a Transaction. Categorical values are uppercased where filers commonly
// submit title case, time zones are trimmed to their two-letter codes, and
// every enumerated column is validated.
func ParseTransaction(row []string) (Transaction, error) {
	if len(row) != len(TransactionColumns) {
		return Transaction{}, errors.NewValidationError("row", len(row),
			fmt.Sprintf("expected %d columns, got %d", len(TransactionColumns), len(row)))
	}

	t := Transaction{
		UniqueID:                 row[0],
		SellerCompanyName:        row[1],
		CustomerCompanyName:      row[2],
		FERCTariffReference:      row[3],
		ContractServiceAgreement: row[4],
		UniqueIdentifier:         row[5],
		PODBalancingAuthority:    row[12],
		PODSpecificLocation:      row[13],
	}

	var err error
	if t.BeginDate, err = parseTimestamp("transaction_begin_date", row[6]); err != nil {
		return Transaction{}, err
	}
	if t.EndDate, err = parseTimestamp("transaction_end_date", row[7]); err != nil {
		return Transaction{}, err
	}
	if t.TradeDate, err = parseDate("trade_date", row[8]); err != nil {
		return Transaction{}, err
	}

	if t.ExchangeBrokerageService, err = CanonicalExchangeBrokerage(row[9]); err != nil {
		return Transaction{}, err
	}
	if t.TypeOfRate, err = CanonicalRateType(row[10]); err != nil {
		return Transaction{}, err
	}
	if t.TimeZone, err = CanonicalTimeZone(row[11]); err != nil {
		return Transaction{}, err
	}
	if t.ClassName, err = CanonicalClassName(row[14]); err != nil {
		return Transaction{}, err
	}
	if t.TermName, err = CanonicalTermName(row[15]); err != nil {
		return Transaction{}, err
	}
	if t.IncrementName, err = CanonicalIncrementName(row[16]); err != nil {
		return Transaction{}, err
	}
	if t.IncrementPeakingName, err = CanonicalIncrementPeakingName(row[17]); err != nil {
		return Transaction{}, err
	}
	if t.ProductName, err = CanonicalProductName(row[18]); err != nil {
		return Transaction{}, err
	}
	if t.RateUnits, err = CanonicalRateUnits(row[21]); err != nil {
		return Transaction{}, err
	}

	if t.Quantity, err = parseDecimal("transaction_quantity", row[19]); err != nil {
		return Transaction{}, err
	}
	if t.Price, err = parseDecimal("price", row[20]); err != nil {
		return Transaction{}, err
	}
	if t.StandardizedQuantity, err = parseDecimal("standardized_quantity", row[22]); err != nil {
		return Transaction{}, err
	}
	if t.StandardizedPrice, err = parseDecimal("standardized_price", row[23]); err != nil {
		return Transaction{}, err
	}
	if t.TotalTransmissionCharge, err = parseDecimal("total_transmission_charge", row[24]); err != nil {
		return Transaction{}, err
	}
	if t.TotalTransactionCharge, err = parseDecimal("total_transaction_charge", row[25]); err != nil {
		return Transaction{}, err
	}

	return t, nil
}

// Row serializes the aligned transaction back to CSV fields in
// TransactionColumns order.
func (t Transaction) Row() []string {
	return []string{
		t.UniqueID,
		t.SellerCompanyName,
		t.CustomerCompanyName,
		t.FERCTariffReference,
		t.ContractServiceAgreement,
		t.UniqueIdentifier,
		formatTimestamp(t.BeginDate),
		formatTimestamp(t.EndDate),
		formatDate(t.TradeDate),
		t.ExchangeBrokerageService,
		t.TypeOfRate,
		t.TimeZone,
		t.PODBalancingAuthority,
		t.PODSpecificLocation,
		t.ClassName,
		t.TermName,
		t.IncrementName,
		t.IncrementPeakingName,
		t.ProductName,
		t.Quantity.String(),
		t.Price.String(),
		t.RateUnits,
		t.StandardizedQuantity.String(),
		t.StandardizedPrice.String(),
		t.TotalTransmissionCharge.String(),
		t.TotalTransactionCharge.String(),
	}
}

// SellerJoinKey returns the normalized seller name used to join against
// CAISO resource data.
func (t Transaction) SellerJoinKey() string {
	return normalize.Seller(t.SellerCompanyName)
}
