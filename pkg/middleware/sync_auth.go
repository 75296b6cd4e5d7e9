package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"toursync/pkg/utils"
)

// SyncAuthMiddleware protects the on-demand sync endpoint with a pre-shared
// bearer token. Only the bcrypt hash of the token is configured on the
// server; the check runs before any side-effecting work.
func SyncAuthMiddleware(tokenHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenHash == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Sync endpoint is not configured")
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if err := utils.CompareSyncToken(tokenHash, token); err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid credential")
			c.Abort()
			return
		}

		c.Next()
	}
}
