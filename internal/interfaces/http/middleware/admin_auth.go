package middleware

import (
	"github.com/gin-gonic/gin"

	domainerrors "aqua-maker.backend/internal/domain/errors"
	"aqua-maker.backend/internal/interfaces/http/response"
	"aqua-maker.backend/pkg/crypto"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminAuthMiddleware guards the operator surface with a bcrypt-hashed API
// key. An empty configured hash leaves the surface open, which is only
// sane in development.
func AdminAuthMiddleware(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.Next()
			return
		}

		key := c.GetHeader(AdminKeyHeader)
		if key == "" || !crypto.CheckAdminKey(key, keyHash) {
			response.AbortError(c, domainerrors.Unauthorized("invalid admin key"))
			return
		}
		c.Next()
	}
}
