package store

import (
	"time"

	"github.com/gridscope/ferceqr/pkg/eqr"
)

// TransactionModel is the persisted form of one aligned transaction row.
// Money columns keep their decimal string form so values round-trip without
// float drift.
type TransactionModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	Quarter            string    `gorm:"column:quarter;index:idx_tx_quarter"`
	UniqueID           string    `gorm:"column:transaction_unique_id;index:idx_tx_unique_id"`
	SellerName         string    `gorm:"column:seller_company_name"`
	SellerJoinKey      string    `gorm:"column:seller_join_key;index:idx_tx_join_key"`
	CustomerName       string    `gorm:"column:customer_company_name"`
	BalancingAuthority string    `gorm:"column:point_of_delivery_balancing_authority;index:idx_tx_ba"`
	SpecificLocation   string    `gorm:"column:point_of_delivery_specific_location"`
	ClassName          string    `gorm:"column:class_name"`
	TermName           string    `gorm:"column:term_name"`
	ProductName        string    `gorm:"column:product_name"`
	TimeZone           string    `gorm:"column:time_zone"`
	BeginDate          time.Time `gorm:"column:transaction_begin_date"`
	EndDate            time.Time `gorm:"column:transaction_end_date"`
	TradeDate          time.Time `gorm:"column:trade_date"`
	Quantity           string    `gorm:"column:transaction_quantity"`
	Price              string    `gorm:"column:price"`
	RateUnits          string    `gorm:"column:rate_units"`
	StandardizedPrice  string    `gorm:"column:standardized_price"`
	TotalCharge        string    `gorm:"column:total_transaction_charge"`
}

// TableName implements the gorm table naming convention.
func (TransactionModel) TableName() string { return "transactions" }

// newTransactionModel maps an aligned transaction into its persisted form.
func newTransactionModel(quarter string, t eqr.Transaction) TransactionModel {
	return TransactionModel{
		Quarter:            quarter,
		UniqueID:           t.UniqueID,
		SellerName:         t.SellerCompanyName,
		SellerJoinKey:      t.SellerJoinKey(),
		CustomerName:       t.CustomerCompanyName,
		BalancingAuthority: t.PODBalancingAuthority,
		SpecificLocation:   t.PODSpecificLocation,
		ClassName:          t.ClassName,
		TermName:           t.TermName,
		ProductName:        t.ProductName,
		TimeZone:           t.TimeZone,
		BeginDate:          t.BeginDate,
		EndDate:            t.EndDate,
		TradeDate:          t.TradeDate,
		Quantity:           t.Quantity.String(),
		Price:              t.Price.String(),
		RateUnits:          t.RateUnits,
		StandardizedPrice:  t.StandardizedPrice.String(),
		TotalCharge:        t.TotalTransactionCharge.String(),
	}
}

// ContractModel is the persisted form of one aligned contract row.
type ContractModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	Quarter            string    `gorm:"column:quarter;index:idx_ct_quarter"`
	UniqueID           string    `gorm:"column:contract_unique_id;index:idx_ct_unique_id"`
	SellerName         string    `gorm:"column:seller_company_name"`
	SellerJoinKey      string    `gorm:"column:seller_join_key;index:idx_ct_join_key"`
	CustomerName       string    `gorm:"column:customer_company_name"`
	Affiliate          string    `gorm:"column:contract_affiliate"`
	ServiceAgreementID string    `gorm:"column:contract_service_agreement_id"`
	ClassName          string    `gorm:"column:class_name"`
	TermName           string    `gorm:"column:term_name"`
	ProductTypeName    string    `gorm:"column:product_type_name"`
	ProductName        string    `gorm:"column:product_name"`
	BalancingAuthority string    `gorm:"column:point_of_delivery_balancing_authority;index:idx_ct_ba"`
	ExecutionDate      time.Time `gorm:"column:contract_execution_date"`
	CommencementDate   time.Time `gorm:"column:commencement_date_of_contract_term"`
	TerminationDate    time.Time `gorm:"column:contract_termination_date"`
	Quantity           string    `gorm:"column:quantity"`
	Units              string    `gorm:"column:units"`
	Rate               string    `gorm:"column:rate"`
	RateUnits          string    `gorm:"column:rate_units"`
}

// TableName implements the gorm table naming convention.
func (ContractModel) TableName() string { return "contracts" }

// newContractModel maps an aligned contract into its persisted form.
func newContractModel(quarter string, c eqr.Contract) ContractModel {
	return ContractModel{
		Quarter:            quarter,
		UniqueID:           c.UniqueID,
		SellerName:         c.SellerCompanyName,
		SellerJoinKey:      c.SellerJoinKey(),
		CustomerName:       c.CustomerCompanyName,
		Affiliate:          c.ContractAffiliate,
		ServiceAgreementID: c.ServiceAgreementID,
		ClassName:          c.ClassName,
		TermName:           c.TermName,
		ProductTypeName:    c.ProductTypeName,
		ProductName:        c.ProductName,
		BalancingAuthority: c.PODBalancingAuthority,
		ExecutionDate:      c.ExecutionDate,
		CommencementDate:   c.CommencementDate,
		TerminationDate:    c.TerminationDate,
		Quantity:           c.Quantity.String(),
		Units:              c.Units,
		Rate:               c.Rate.String(),
		RateUnits:          c.RateUnits,
	}
}
