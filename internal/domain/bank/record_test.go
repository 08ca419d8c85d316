package bank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAmount(t *testing.T) {
	r := Record{
		CreditAmount: decimal.RequireFromString("100.00"),
		DebitAmount:  decimal.RequireFromString("25.50"),
	}
	assert.True(t, r.NetAmount().Equal(decimal.RequireFromString("125.50")),
		"credit and debit add; debits arrive sign-normalized")
}

func TestClean(t *testing.T) {
	records := []Record{
		{BankReference: "000B777", CustomerReference: "0001112001"},
		{BankReference: "NONREF", CustomerReference: "0000"},
		{BankReference: "", CustomerReference: "C1"},
	}

	cleaned := Clean(records)
	require.Len(t, cleaned, len(records))

	assert.Equal(t, "B777", cleaned[0].BankReference)
	assert.Equal(t, "1112001", cleaned[0].CustomerReference)

	t.Run("NONREF marker survives cleaning", func(t *testing.T) {
		assert.Equal(t, NonReference, cleaned[1].BankReference)
	})

	t.Run("all-zero reference keeps a single zero", func(t *testing.T) {
		assert.Equal(t, "0", cleaned[1].CustomerReference)
	})

	t.Run("empty reference stays empty", func(t *testing.T) {
		assert.Empty(t, cleaned[2].BankReference)
	})

	t.Run("input slice untouched", func(t *testing.T) {
		assert.Equal(t, "000B777", records[0].BankReference)
	})
}
