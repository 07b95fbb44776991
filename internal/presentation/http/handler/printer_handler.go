package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/restopos-api/internal/application/service"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/restopos-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	receiptService *service.ReceiptService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(receiptService *service.ReceiptService) *PrinterHandler {
	return &PrinterHandler{receiptService: receiptService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.receiptService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.receiptService.TestPrint(c.Request.Context())
	if err != nil {
		if receipt == nil {
			response.Error(c, err)
			return
		}
		// printer type "none" ends up here too
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"receipt": receipt,
	})
}

// Print prints a receipt or kitchen ticket for an order.
func (h *PrinterHandler) Print(c *gin.Context) {
	var req request.PrintRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := uuid.Parse(req.OrderID)
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return
	}

	ctx := c.Request.Context()
	viewer := GetUserID(c)

	var doc interface{}
	switch req.Kind {
	case "kot":
		ticket, printErr := h.receiptService.PrintKOT(ctx, id, viewer)
		if ticket != nil {
			doc = ticket
		}
		err = printErr
	default:
		receipt, printErr := h.receiptService.PrintOrderReceipt(ctx, id, viewer)
		if receipt != nil {
			doc = receipt
		}
		err = printErr
	}

	if err != nil {
		if doc != nil {
			response.OK(c, "Document generated but printing failed", gin.H{
				req.Kind:  doc,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Printed successfully", gin.H{req.Kind: doc})
}
