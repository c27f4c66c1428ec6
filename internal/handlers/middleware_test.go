package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipebox/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil, nil)
	r.GET("/secure", h.accountMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "accountId": c.GetInt(ctxAccountID)})
	})
	return r
}

func TestAccountMiddleware_Errors(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{
			name:    "missing header",
			header:  "",
			wantMsg: "missing Authorization header",
		},
		{
			name:    "not bearer",
			header:  "Basic abc123",
			wantMsg: "invalid Authorization header format",
		},
		{
			name:    "single part",
			header:  "Bearer",
			wantMsg: "invalid Authorization header format",
		},
		{
			name:    "parse fails",
			header:  "Bearer bad-token",
			wantMsg: "invalid or expired token",
		},
	}

	auth := &mockAuth{parseErr: errors.New("expired")}
	r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			var m map[string]string
			_ = json.Unmarshal(w.Body.Bytes(), &m)
			if m["error"] != tc.wantMsg {
				t.Fatalf("expected %q, got %q", tc.wantMsg, m["error"])
			}
		})
	}
}

func TestAccountMiddleware_Success(t *testing.T) {
	auth := &mockAuth{parseID: 13}
	r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["accountId"].(float64)) != 13 {
		t.Fatalf("account id not set in context: %v", m["accountId"])
	}
	if auth.lastParseToken != "good-token" {
		t.Fatalf("token not forwarded: %q", auth.lastParseToken)
	}
}
