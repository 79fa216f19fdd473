package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

// MessageResponse is a plain confirmation payload.
type MessageResponse struct {
	Message string `json:"message" example:"session cleared"`
}
