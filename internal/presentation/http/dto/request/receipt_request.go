package request

type PreviewItemRequest struct {
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	UnitPrice float64 `json:"unit_price"`
	VATRate   float64 `json:"vat_rate"`
}

// PreviewReceiptRequest is a bill that was not created here, for example
// one pulled from a fiscal device. OrderedAt is ISO-8601; without a zone it
// is read as UTC.
type PreviewReceiptRequest struct {
	InvoiceNo     string               `json:"invoice_no"`
	OrderedAt     string               `json:"ordered_at"`
	OrderType     string               `json:"order_type" binding:"omitempty,oneof=dine_in takeaway delivery"`
	TableNo       string               `json:"table_no"`
	Items         []PreviewItemRequest `json:"items" binding:"dive"`
	VAT           float64              `json:"vat"`
	ServiceCharge float64              `json:"service_charge"`
	Discount      float64              `json:"discount"`
	Paid          float64              `json:"paid"`
}
