package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/internal/application/service"
	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/response"
)

// ReceiptHandler renders receipts in the caller's timezone.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Get returns the receipt of an order as JSON.
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	receipt, err := h.receiptService.BuildOrderReceipt(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt generated successfully", receipt)
}

// PDF streams the receipt of an order as a PDF attachment.
func (h *ReceiptHandler) PDF(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	doc, receipt, err := h.receiptService.RenderOrderPDF(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", receipt.InvoiceNo+".pdf"))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// Print sends the receipt of an order to the thermal printer. A printer
// failure still returns the receipt so the terminal can show it.
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	receipt, err := h.receiptService.PrintOrderReceipt(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{"receipt": receipt})
}

// KOT prints the kitchen order ticket of an order.
func (h *ReceiptHandler) KOT(c *gin.Context) {
	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	ticket, err := h.receiptService.PrintKOT(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		if ticket != nil {
			response.OK(c, "Kitchen ticket generated but printing failed", gin.H{
				"ticket":  ticket,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Kitchen ticket printed successfully", gin.H{"ticket": ticket})
}

// Preview renders a receipt for a bill that is not stored here.
func (h *ReceiptHandler) Preview(c *gin.Context) {
	var req request.PreviewReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.PreviewItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.PreviewItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			VATRate:   item.VATRate,
		}
	}

	receipt, err := h.receiptService.PreviewReceipt(c.Request.Context(), &service.PreviewInput{
		ViewerID:      GetUserID(c),
		InvoiceNo:     req.InvoiceNo,
		OrderedAt:     req.OrderedAt,
		OrderType:     enum.OrderType(req.OrderType),
		TableNo:       req.TableNo,
		Items:         items,
		VAT:           req.VAT,
		ServiceCharge: req.ServiceCharge,
		Discount:      req.Discount,
		Paid:          req.Paid,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt preview generated", receipt)
}
