package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradedesk/internal/gst"
	"tradedesk/internal/service"
)

// TotalsHandler serves the document totals calculator.
type TotalsHandler struct {
	docs service.DocumentService
}

// NewTotalsHandler creates a new TotalsHandler.
func NewTotalsHandler(docs service.DocumentService) *TotalsHandler {
	return &TotalsHandler{docs: docs}
}

// Compute handles POST /api/v1/totals
// @Summary Compute document totals
// @Description Compute subtotal, discount, CGST/SGST or IGST, TCS and total for a set of line items. Pure calculation, no session required.
// @Tags totals
// @Accept json
// @Produce json
// @Param request body service.TotalsRequest true "Line items, charges and counterparty GSTIN"
// @Success 200 {object} Response{data=domain.DocumentTotals} "Computed totals"
// @Failure 400 {object} ErrorResponseBody "Invalid request or validation failed"
// @Router /totals [post]
func (h *TotalsHandler) Compute(c *gin.Context) {
	var req service.TotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	totals, err := h.docs.ComputeTotals(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, totals)
}

// TaxSlabs handles GET /api/v1/tax-slabs
// @Summary List allowed tax slabs
// @Description List the GST slab percentages accepted by the totals calculator
// @Tags totals
// @Produce json
// @Success 200 {object} Response{data=[]number} "Allowed slabs"
// @Router /tax-slabs [get]
func (h *TotalsHandler) TaxSlabs(c *gin.Context) {
	RespondOK(c, gst.AllowedSlabs)
}
