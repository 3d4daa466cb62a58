package eqr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridscope/ferceqr/pkg/errors"
)

func validContractRow() []string {
	return []string{
		"C1",                          // contract_unique_id
		"Calpine Energy Services, L.P.", // seller_company_name
		"",                            // seller_history_name
		"San Diego Gas & Electric",    // customer_company_name
		"N",                           // contract_affiliate
		"FERC Electric Tariff Volume 2", // ferc_tariff_reference
		"SA-100",                      // contract_service_agreement_id
		"202001151200",                // contract_execution_date
		"202002010000",                // commencement_date_of_contract_term
		"203001312359",                // contract_termination_date
		"",                            // actual_termination_date
		"Evergreen",                   // extension_provision_description
		"F",                           // class_name
		"LT",                          // term_name
		"M",                           // increment_name
		"FP",                          // increment_peaking_name
		"MB - Market Based",           // product_type_name
		"Capacity",                    // product_name (title case)
		"100",                         // quantity
		"MW",                          // units
		"5.25",                        // rate
		"5.00",                        // rate_minimum
		"5.50",                        // rate_maximum
		"",                            // rate_description
		"$/MW-MO",                     // rate_units
		"CISO",                        // point_of_receipt_balancing_authority
		"",                            // point_of_receipt_specific_location
		"CISO",                        // point_of_delivery_balancing_authority
		"SP15",                        // point_of_delivery_specific_location
		"202002010000",                // begin_date
		"203001312359",                // end_date
	}
}

func TestParseContract(t *testing.T) {
	c, err := ParseContract(validContractRow())
	require.NoError(t, err)

	assert.Equal(t, "C1", c.UniqueID)
	assert.Equal(t, "MB - Market Based", c.ProductTypeName)
	assert.Equal(t, "CAPACITY", c.ProductName)
	assert.Equal(t, "$/MW-MO", c.RateUnits)
	assert.Equal(t, time.Date(2020, 1, 15, 12, 0, 0, 0, time.UTC), c.ExecutionDate)
	assert.True(t, c.ActualTerminationDate.IsZero())
	assert.Equal(t, "5.25", c.Rate.String())
}

func TestParseContractErrors(t *testing.T) {
	t.Run("WrongColumnCount", func(t *testing.T) {
		_, err := ParseContract(validContractRow()[:10])
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})

	t.Run("BadProductType", func(t *testing.T) {
		row := validContractRow()
		row[16] = "XX - Unknown"
		_, err := ParseContract(row)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})

	t.Run("BadRate", func(t *testing.T) {
		row := validContractRow()
		row[20] = "about five"
		_, err := ParseContract(row)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})
}

func TestContractRowRoundTrip(t *testing.T) {
	c, err := ParseContract(validContractRow())
	require.NoError(t, err)

	row := c.Row()
	require.Len(t, row, len(ContractColumns))
	assert.Equal(t, "2020-01-15T12:00", row[7])
	assert.Equal(t, "", row[10]) // blank actual_termination_date stays blank
	assert.Equal(t, "CAPACITY", row[17])
}

func TestContractSellerJoinKey(t *testing.T) {
	c, err := ParseContract(validContractRow())
	require.NoError(t, err)
	assert.Equal(t, "calpine energy services lp", c.SellerJoinKey())
}
