package handler

import (

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/internal/application/service"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/restopos-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles listing orders. The date filter is a local calendar date in
// the caller's timezone.
func (h *OrderHandler) List(c *gin.Context) {
	var req request.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PerPage == 0 {
		req.PerPage = 15
	}

	input := &service.ListOrdersInput{
		UserID:     GetUserID(c),
		Pagination: &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
		Search:     req.Search,
		Date:       req.Date,
		SortOrder:  req.SortOrder,
	}
	if req.Status != "" {
		status, ok := parseStatus(req.Status)
		if !ok {
			response.BadRequest(c, "Invalid status")
			return
		}
		input.Status = &status
	}
	if req.OrderType != "" {
		orderType := enum.OrderType(req.OrderType)
		if !orderType.Valid() {
			response.BadRequest(c, "Invalid order type")
			return
		}
		input.OrderType = &orderType
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Orders retrieved successfully", result)
}

// Create handles creating an order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderItemInput{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			VATRate:   item.VATRate,
			Note:      item.Note,
		}
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		UserID:               GetUserID(c),
		TableNo:              req.TableNo,
		OrderType:            enum.OrderType(req.OrderType),
		Items:                items,
		VAT:                  req.VAT,
		ServiceCharge:        req.ServiceCharge,
		ServiceChargePercent: req.ServiceChargePercent,
		Discount:             req.Discount,
		Paid:                 req.Paid,
		PaymentType:          req.PaymentType,
		Note:                 req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Cancel handles canceling an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", order)
}

// PayDue handles paying a due amount
func (h *OrderHandler) PayDue(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	var req request.PayDueRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.PayDue(c.Request.Context(), id, req.Amount, req.PaymentType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", order)
}
