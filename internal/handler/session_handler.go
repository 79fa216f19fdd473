package handler

import (
	"github.com/gin-gonic/gin"

	"tradedesk/internal/session"
)

// SessionHandler exposes the current session and lets the user clear it.
type SessionHandler struct {
	manager session.Manager
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(manager session.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

// Get handles GET /api/v1/session
// @Summary Get current session
// @Description Return the session loaded from the bearer token
// @Tags session
// @Produce json
// @Success 200 {object} Response{data=domain.Session} "Current session"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	sess, ok := extractSession(c)
	if !ok {
		return
	}
	RespondOK(c, sess)
}

// Logout handles POST /api/v1/session/logout
// @Summary Log out
// @Description Revoke the current session token until it expires
// @Tags session
// @Produce json
// @Success 200 {object} Response{data=MessageResponse} "Session cleared"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /session/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	sess, ok := extractSession(c)
	if !ok {
		return
	}
	if err := h.manager.Clear(c.Request.Context(), sess); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "session cleared"})
}
