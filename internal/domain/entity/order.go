package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/pkg/receiptcalc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is a restaurant bill. Amounts are VAT-inclusive currency values;
// OrderedAt is the UTC instant the bill was opened.
type Order struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID        *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	TableNo       string           `gorm:"size:20" json:"table_no,omitempty"`
	OrderType     enum.OrderType   `gorm:"size:20;not null;default:'dine_in'" json:"order_type"`
	OrderedAt     time.Time        `gorm:"not null;index" json:"ordered_at"`
	OrderStatus   enum.OrderStatus `gorm:"default:0" json:"order_status"`
	TotalItems    int              `gorm:"default:0" json:"total_items"`
	Subtotal      decimal.Decimal  `gorm:"type:decimal(14,2);not null;default:0" json:"subtotal"`
	VAT           decimal.Decimal  `gorm:"type:decimal(14,2);not null;default:0" json:"vat"`
	ServiceCharge decimal.Decimal  `gorm:"type:decimal(14,2);not null;default:0" json:"service_charge"`
	Discount      decimal.Decimal  `gorm:"type:decimal(14,2);not null;default:0" json:"discount"`
	ExternalVAT   decimal.Decimal  `gorm:"type:decimal(14,2);not null;default:0" json:"external_vat"` // VAT reported by a fiscal device, zero when derived
	Total         decimal.Decimal  `gorm:"type:decimal(14,2);not null;default:0" json:"total"`
	Paid          decimal.Decimal  `gorm:"type:decimal(14,2);not null;default:0" json:"paid"`
	Due           decimal.Decimal  `gorm:"type:decimal(14,2);not null;default:0" json:"due"`
	InvoiceNo     string           `gorm:"size:100;uniqueIndex;not null" json:"invoice_no"`
	PaymentType   string           `gorm:"size:50" json:"payment_type,omitempty"`
	Note          string           `gorm:"size:255" json:"note,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// LineItems converts the order lines into calculator input.
func (o *Order) LineItems() []receiptcalc.LineItem {
	items := make([]receiptcalc.LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, receiptcalc.LineItem{Total: it.Total, VATRate: it.VATRate})
	}
	return items
}

// Recompute prices the stored lines again with the stored adjustments.
func (o *Order) Recompute() (receiptcalc.AmountBreakdown, error) {
	return receiptcalc.ComputeBreakdown(o.LineItems(), o.ExternalVAT, o.ServiceCharge, o.Discount)
}

// Breakdown returns the stored amounts of the order.
func (o *Order) Breakdown() receiptcalc.AmountBreakdown {
	return receiptcalc.AmountBreakdown{
		Subtotal:      o.Subtotal,
		VAT:           o.VAT,
		ServiceCharge: o.ServiceCharge,
		Discount:      o.Discount,
		GrandTotal:    o.Total,
	}
}

// ApplyBreakdown copies computed amounts onto the order and recomputes Due.
func (o *Order) ApplyBreakdown(b receiptcalc.AmountBreakdown) {
	o.Subtotal = b.Subtotal
	o.VAT = b.VAT
	o.ServiceCharge = b.ServiceCharge
	o.Discount = b.Discount
	o.Total = b.GrandTotal
	o.Due = decimal.Max(o.Total.Sub(o.Paid), decimal.Zero)
}

// OrderItem is one line of an order. Total is UnitPrice*Quantity including VAT.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	Name      string          `gorm:"size:150;not null" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"unit_price"`
	Total     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
	VATRate   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"vat_rate"`
	Note      string          `gorm:"size:255" json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

func (OrderItem) TableName() string {
	return "order_items"
}
