package middleware

import (
	"github.com/gin-gonic/gin"

	"stayhub-backend/internal/shared/response"
)

// AdminMiddleware checks if the actor has the admin role.
// Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := ActorFromContext(c)
		if !ok || !a.IsAdmin() {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
