package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/domain"
	"tradedesk/internal/handler"
	"tradedesk/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testSession() *domain.Session {
	return &domain.Session{UserID: "u-1", Permissions: []string{"*"}}
}

// newContext builds a test context with the given session and path params.
func newContext(method, target string, body interface{}, sess *domain.Session, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, target, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, target, http.NoBody)
	}
	c.Request = req
	c.Params = params
	if sess != nil {
		c.Set(middleware.ContextKeySession, sess)
	}
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
