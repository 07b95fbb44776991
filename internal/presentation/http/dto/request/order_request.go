package request

// OrderItemRequest is one bill line. UnitPrice includes VAT.
type OrderItemRequest struct {
	Name      string  `json:"name" binding:"required,max=150"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	UnitPrice float64 `json:"unit_price" binding:"min=0"`
	VATRate   float64 `json:"vat_rate" binding:"min=0,max=100"`
	Note      string  `json:"note" binding:"omitempty,max=255"`
}

// CreateOrderRequest represents an order creation request. VAT, when
// positive, is the amount reported by a fiscal device and overrides the
// per-line rates.
type CreateOrderRequest struct {
	TableNo              string             `json:"table_no" binding:"omitempty,max=20"`
	OrderType            string             `json:"order_type" binding:"omitempty,oneof=dine_in takeaway delivery"`
	Items                []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	VAT                  float64            `json:"vat"`
	ServiceCharge        float64            `json:"service_charge"`
	ServiceChargePercent *float64           `json:"service_charge_percent"`
	Discount             float64            `json:"discount"`
	Paid                 float64            `json:"paid"`
	PaymentType          string             `json:"payment_type" binding:"omitempty,max=50"`
	Note                 string             `json:"note" binding:"omitempty,max=255"`
}

// PayDueRequest records a payment against an open order.
type PayDueRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	PaymentType string  `json:"payment_type" binding:"omitempty,max=50"`
}

// OrderFilterRequest represents order list filters. Date is a local
// calendar date in the caller's timezone.
type OrderFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	OrderType string `form:"order_type"`
	Date      string `form:"date"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
