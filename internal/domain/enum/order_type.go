package enum

// OrderType says how the food leaves the kitchen.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return true
	}
	return false
}

// Label is the text printed on receipts and kitchen tickets.
func (t OrderType) Label() string {
	switch t {
	case OrderTypeDineIn:
		return "Dine-in"
	case OrderTypeTakeaway:
		return "Takeaway"
	case OrderTypeDelivery:
		return "Delivery"
	}
	return string(t)
}
