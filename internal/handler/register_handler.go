package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tradedesk/internal/service"
)

// RegisterHandler serves the sales register download.
type RegisterHandler struct {
	svc service.RegisterService
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(svc service.RegisterService) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

// Export handles GET /api/v1/sales-invoices/export
// @Summary Export sales register
// @Description Download the sales register with totals recomputed per invoice
// @Tags register
// @Produce octet-stream
// @Param format query string false "File format" Enums(csv, xlsx) default(csv)
// @Param q query string false "Search terms"
// @Success 200 {file} file "Sales register file"
// @Failure 400 {object} ErrorResponseBody "Unknown format"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Security BearerAuth
// @Router /sales-invoices/export [get]
func (h *RegisterHandler) Export(c *gin.Context) {
	sess, ok := extractSession(c)
	if !ok {
		return
	}

	file, err := h.svc.Export(c.Request.Context(), sess, c.DefaultQuery("format", service.FormatCSV), c.Query("q"))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Header("X-Row-Count", strconv.Itoa(file.Rows))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
