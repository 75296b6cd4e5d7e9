package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"toursync/pkg/utils"
)

func syncAuthRouter(t *testing.T, tokenHash string) (*gin.Engine, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handlerRan := false
	router := gin.New()
	router.POST("/sync-now", SyncAuthMiddleware(tokenHash), func(c *gin.Context) {
		handlerRan = true
		c.Status(http.StatusOK)
	})
	return router, &handlerRan
}

func TestSyncAuthMiddleware(t *testing.T) {
	hash, err := utils.HashSyncToken("correct-horse")
	if err != nil {
		t.Fatalf("HashSyncToken() error = %v", err)
	}

	tests := []struct {
		name       string
		tokenHash  string
		authHeader string
		wantStatus int
		wantRan    bool
	}{
		{"valid token", hash, "Bearer correct-horse", http.StatusOK, true},
		{"wrong token", hash, "Bearer battery-staple", http.StatusUnauthorized, false},
		{"missing header", hash, "", http.StatusUnauthorized, false},
		{"not a bearer scheme", hash, "Basic abc123", http.StatusUnauthorized, false},
		{"hash unconfigured", "", "Bearer correct-horse", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, handlerRan := syncAuthRouter(t, tt.tokenHash)

			req := httptest.NewRequest(http.MethodPost, "/sync-now", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if *handlerRan != tt.wantRan {
				t.Errorf("handler ran = %v, want %v (rejection must precede the handler)", *handlerRan, tt.wantRan)
			}
		})
	}
}
