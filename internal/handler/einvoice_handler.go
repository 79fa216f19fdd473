package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradedesk/internal/export"
	"tradedesk/internal/service"
)

// EInvoiceHandler serves e-invoice projections and stored exports.
type EInvoiceHandler struct {
	svc service.EInvoiceService
}

// NewEInvoiceHandler creates a new EInvoiceHandler.
func NewEInvoiceHandler(svc service.EInvoiceService) *EInvoiceHandler {
	return &EInvoiceHandler{svc: svc}
}

// Download handles GET /api/v1/sales-invoices/:id/einvoice
// The projection is returned bare, as the portal expects it, not in the envelope.
// @Summary Download e-invoice JSON
// @Description Project a sales invoice into the e-invoice / e-way-bill schema (version 1.1) as a file attachment
// @Tags einvoice
// @Produce json
// @Param id path string true "Sales invoice ID"
// @Success 200 {array} einvoice.Document "E-invoice document"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 422 {object} ErrorResponseBody "Invoice missing required fields"
// @Security BearerAuth
// @Router /sales-invoices/{id}/einvoice [get]
func (h *EInvoiceHandler) Download(c *gin.Context) {
	sess, ok := extractSession(c)
	if !ok {
		return
	}

	invoiceID := c.Param("id")
	docs, err := h.svc.Project(c.Request.Context(), sess, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	body, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		HandleError(c, err)
		return
	}

	name := invoiceID
	if len(docs) > 0 && docs[0].DocDtls.No != "" {
		name = docs[0].DocDtls.No
	}
	filename := export.BuildFilename("einvoice_"+name, "json", time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/json", body)
}

// Export handles POST /api/v1/sales-invoices/:id/einvoice/export
// @Summary Export e-invoice JSON to storage
// @Description Store the e-invoice projection in object storage, record the export and return a presigned download URL
// @Tags einvoice
// @Produce json
// @Param id path string true "Sales invoice ID"
// @Success 201 {object} Response{data=service.EInvoiceExportOutput} "Export stored"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 422 {object} ErrorResponseBody "Invoice missing required fields"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /sales-invoices/{id}/einvoice/export [post]
func (h *EInvoiceHandler) Export(c *gin.Context) {
	sess, ok := extractSession(c)
	if !ok {
		return
	}

	out, err := h.svc.Export(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, out)
}

// ListExports handles GET /api/v1/sales-invoices/:id/einvoice/exports
// @Summary List e-invoice exports
// @Description List stored e-invoice exports for a sales invoice
// @Tags einvoice
// @Produce json
// @Param id path string true "Sales invoice ID"
// @Success 200 {object} Response{data=[]domain.EInvoiceExport} "Exports"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Security BearerAuth
// @Router /sales-invoices/{id}/einvoice/exports [get]
func (h *EInvoiceHandler) ListExports(c *gin.Context) {
	sess, ok := extractSession(c)
	if !ok {
		return
	}

	exports, err := h.svc.ListExports(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, exports)
}
