package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradedesk/internal/service"
)

// SourceHandler serves remaining quantities and consumption records of
// work orders and defective-find records.
type SourceHandler struct {
	docs service.DocumentService
}

// NewSourceHandler creates a new SourceHandler.
func NewSourceHandler(docs service.DocumentService) *SourceHandler {
	return &SourceHandler{docs: docs}
}

// Remaining handles GET /api/v1/sources/:kind/:id/remaining
// @Summary Get remaining quantities
// @Description Compute remaining quantities of a work order or defective-find record after all of its consumption records
// @Tags sources
// @Produce json
// @Param kind path string true "Source kind" Enums(work_order, defective_find)
// @Param id path string true "Source document ID"
// @Success 200 {object} Response{data=service.RemainingView} "Remaining quantities and available items"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Failure 404 {object} ErrorResponseBody "Unknown source kind or source not found"
// @Failure 502 {object} ErrorResponseBody "Backend unavailable"
// @Security BearerAuth
// @Router /sources/{kind}/{id}/remaining [get]
func (h *SourceHandler) Remaining(c *gin.Context) {
	sess, ok := extractSession(c)
	if !ok {
		return
	}
	kind, ok := parseSourceKind(c)
	if !ok {
		return
	}

	view, err := h.docs.Remaining(c.Request.Context(), sess, kind, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// ListConsumptions handles GET /api/v1/sources/:kind/:id/consumptions
// @Summary List consumption records
// @Description List sales invoices or restores drawn from a source document, filtered by search terms
// @Tags sources
// @Produce json
// @Param kind path string true "Source kind" Enums(work_order, defective_find)
// @Param id path string true "Source document ID"
// @Param q query string false "Search terms"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} Response{data=[]domain.ConsumptionRecord} "Page of consumption records"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Failure 404 {object} ErrorResponseBody "Unknown source kind or source not found"
// @Security BearerAuth
// @Router /sources/{kind}/{id}/consumptions [get]
func (h *SourceHandler) ListConsumptions(c *gin.Context) {
	sess, ok := extractSession(c)
	if !ok {
		return
	}
	kind, ok := parseSourceKind(c)
	if !ok {
		return
	}
	page, pageSize := parsePage(c)

	recs, w, err := h.docs.ListConsumptions(c.Request.Context(), sess, kind, c.Param("id"), service.ListConsumptionsInput{
		Query:    c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPage(c, recs, w)
}

// Submit handles POST /api/v1/sources/:kind/:id/consumptions
// @Summary Submit a consumption record
// @Description Validate proposed quantities against the remaining allowance and submit a sales invoice or restore to the backend
// @Tags sources
// @Accept json
// @Produce json
// @Param kind path string true "Source kind" Enums(work_order, defective_find)
// @Param id path string true "Source document ID"
// @Param request body service.SubmitRequest true "Consumption record"
// @Success 201 {object} Response{data=service.SubmitResult} "Record accepted"
// @Failure 400 {object} ErrorResponseBody "Invalid request or validation failed"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Failure 409 {object} ErrorResponseBody "Backend rejected the allocation"
// @Failure 422 {object} ErrorResponseBody "Quantities exceed the remaining allowance"
// @Security BearerAuth
// @Router /sources/{kind}/{id}/consumptions [post]
func (h *SourceHandler) Submit(c *gin.Context) {
	sess, ok := extractSession(c)
	if !ok {
		return
	}
	kind, ok := parseSourceKind(c)
	if !ok {
		return
	}

	var req service.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.docs.Submit(c.Request.Context(), sess, kind, c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, res)
}

// ListAudits handles GET /api/v1/sources/:kind/:id/audits
// @Summary List submission audits
// @Description List accepted and rejected submission attempts against a source document
// @Tags sources
// @Produce json
// @Param kind path string true "Source kind" Enums(work_order, defective_find)
// @Param id path string true "Source document ID"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(20)
// @Success 200 {object} Response{data=[]domain.SubmissionAudit} "Submission audits"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Security BearerAuth
// @Router /sources/{kind}/{id}/audits [get]
func (h *SourceHandler) ListAudits(c *gin.Context) {
	sess, ok := extractSession(c)
	if !ok {
		return
	}
	kind, ok := parseSourceKind(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	audits, total, err := h.docs.ListAudits(c.Request.Context(), sess, kind, c.Param("id"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, audits, PagMeta{Total: total, Offset: offset, Limit: limit})
}
