package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tradedesk/internal/domain"
	"tradedesk/internal/listing"
	"tradedesk/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response. Details carries per-field
// validation errors or allocation violations.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// PagMeta holds pagination metadata. Offset-paged lists fill Offset and Limit;
// page-numbered lists fill Page, PageSize and TotalPages.
type PagMeta struct {
	Total      int `json:"total"`
	Offset     int `json:"offset"`
	Limit      int `json:"limit"`
	Page       int `json:"page,omitempty"`
	PageSize   int `json:"page_size,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondPage sends one page of an in-memory listing.
func RespondPage(c *gin.Context, data interface{}, w listing.Window) {
	RespondPaginated(c, data, PagMeta{
		Total:      w.Total,
		Offset:     w.Start,
		Limit:      w.PageSize,
		Page:       w.Page,
		PageSize:   w.PageSize,
		TotalPages: w.TotalPages,
	})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_FAILED", "one or more fields are invalid"
	case errors.Is(err, domain.ErrAllocationExceeded):
		return http.StatusUnprocessableEntity, "ALLOCATION_EXCEEDED", "proposed quantities exceed the remaining balance"
	case errors.Is(err, domain.ErrAllocationConflict):
		return http.StatusConflict, "ALLOCATION_CONFLICT", "remaining quantities changed; reload the source document and try again"
	case errors.Is(err, domain.ErrIncompleteInvoice):
		return http.StatusUnprocessableEntity, "INCOMPLETE_INVOICE", err.Error()
	case errors.Is(err, domain.ErrUnknownSourceKind):
		return http.StatusNotFound, "UNKNOWN_SOURCE_KIND", "unknown source document kind; allowed: work_order, defective_find"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrSessionRevoked):
		return http.StatusUnauthorized, "SESSION_REVOKED", "session has been cleared; sign in again"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return http.StatusBadGateway, "BACKEND_UNAVAILABLE", "the document backend could not be reached"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// errorDetails returns the structured payload attached to an error, if any.
func errorDetails(err error) interface{} {
	var fe domain.FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	var ae *domain.AllocationError
	if errors.As(err, &ae) {
		return ae.Violations
	}
	return nil
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Error().Err(err).Interface("request_id", requestID).Msg("internal error")
	}
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg, Details: errorDetails(err)},
	})
}

// extractSession returns the request's session.
// Returns false if it is missing (error response already written).
func extractSession(c *gin.Context) (*domain.Session, bool) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing session context")
		return nil, false
	}
	return sess, true
}

// parseSourceKind reads the :kind path parameter.
// Returns false if it is unknown (error response already written).
func parseSourceKind(c *gin.Context) (domain.SourceKind, bool) {
	kind, err := domain.ParseSourceKind(c.Param("kind"))
	if err != nil {
		HandleError(c, err)
		return "", false
	}
	return kind, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

func parsePage(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(listing.DefaultPageSize)))
	return page, pageSize
}
