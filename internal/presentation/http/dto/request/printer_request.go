package request

// PrintRequest is the request body for printing a stored order.
type PrintRequest struct {
	Kind    string `json:"kind" binding:"required,oneof=receipt kot"`
	OrderID string `json:"order_id" binding:"required,uuid"`
}
