package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus is the lifecycle state of a bill.
type OrderStatus int

const (
	OrderStatusOpen      OrderStatus = 0
	OrderStatusPaid      OrderStatus = 1
	OrderStatusCancelled OrderStatus = 2
)

var orderStatusNames = [...]string{"Open", "Paid", "Cancelled"}

func (s OrderStatus) String() string {
	if s < 0 || int(s) >= len(orderStatusNames) {
		return fmt.Sprintf("OrderStatus(%d)", int(s))
	}
	return orderStatusNames[s]
}

func (s OrderStatus) Valid() bool {
	return s >= 0 && int(s) < len(orderStatusNames)
}

// ParseOrderStatus accepts the names returned by String, case-sensitively.
func ParseOrderStatus(str string) (OrderStatus, bool) {
	for i, name := range orderStatusNames {
		if name == str {
			return OrderStatus(i), true
		}
	}
	return 0, false
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !OrderStatus(i).Valid() {
			return fmt.Errorf("invalid order status %d", i)
		}
		*s = OrderStatus(i)
		return nil
	}
	parsed, ok := ParseOrderStatus(str)
	if !ok {
		return fmt.Errorf("invalid order status %q", str)
	}
	*s = parsed
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", value)
	}
	return nil
}
