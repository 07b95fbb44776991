package entity

import (
	"github.com/sangkips/restopos-api/pkg/receiptcalc"
	"github.com/shopspring/decimal"
)

// ReceiptHeader is the restaurant block printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	VATRegNo  string `json:"vat_reg_no,omitempty"`
}

type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is composed from an order at print time and never stored.
// Date and Time are already rendered in the viewer's timezone.
type Receipt struct {
	Header      ReceiptHeader               `json:"header"`
	InvoiceNo   string                      `json:"invoice_no"`
	Date        string                      `json:"date"`
	Time        string                      `json:"time"`
	Timezone    string                      `json:"timezone"`
	OrderType   string                      `json:"order_type"`
	TableNo     string                      `json:"table_no,omitempty"`
	PaymentType string                      `json:"payment_type,omitempty"`
	Items       []ReceiptItem               `json:"items"`
	Amounts     receiptcalc.AmountBreakdown `json:"amounts"`
	Paid        decimal.Decimal             `json:"paid"`
	Due         decimal.Decimal             `json:"due"`
	Currency    string                      `json:"currency,omitempty"`
	Footer      string                      `json:"footer,omitempty"`
}

// KitchenTicket lists what the kitchen has to prepare; it carries no prices.
type KitchenTicket struct {
	InvoiceNo string              `json:"invoice_no"`
	Time      string              `json:"time"`
	OrderType string              `json:"order_type"`
	TableNo   string              `json:"table_no,omitempty"`
	Items     []KitchenTicketItem `json:"items"`
	Note      string              `json:"note,omitempty"`
}

type KitchenTicketItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note,omitempty"`
}
