package pdf

import (
	"bytes"
	"testing"

	"github.com/sangkips/restopos-api/internal/domain/entity"
	"github.com/sangkips/restopos-api/pkg/receiptcalc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReceipt(t *testing.T) {
	r := &entity.Receipt{
		Header:    entity.ReceiptHeader{StoreName: "Dhaba House", Address: "Road 11, Banani", VATRegNo: "000123456"},
		InvoiceNo: "INV-20240315-1a2b3c4d",
		Date:      "15 Mar 2024",
		Time:      "12:30 PM",
		OrderType: "Dine-in",
		TableNo:   "7",
		Items: []entity.ReceiptItem{
			{Name: "Kacchi Biryani", Quantity: 1, UnitPrice: decimal.NewFromInt(115), Total: decimal.NewFromInt(115)},
		},
		Amounts: receiptcalc.AmountBreakdown{
			Subtotal:      decimal.NewFromInt(100),
			VAT:           decimal.NewFromInt(15),
			ServiceCharge: decimal.Zero,
			Discount:      decimal.Zero,
			GrandTotal:    decimal.NewFromInt(115),
		},
		Paid:     decimal.NewFromInt(100),
		Due:      decimal.NewFromInt(15),
		Currency: "BDT",
		Footer:   "Thank you!",
	}

	b, err := RenderReceipt(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestRenderReceiptWithoutItems(t *testing.T) {
	b, err := RenderReceipt(&entity.Receipt{Header: entity.ReceiptHeader{StoreName: "Empty"}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}
