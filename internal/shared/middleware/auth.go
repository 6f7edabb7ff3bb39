package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayhub-backend/internal/shared/actor"
	"stayhub-backend/internal/shared/response"
	"stayhub-backend/pkg/jwt"
)

const actorKey = "actor"

// AuthMiddleware validates the bearer token and attaches the Actor to the context
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Step 1: Read the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		// Step 2: Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		// Step 3: Verify and parse the access token
		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Invalid user ID in token")
			c.Abort()
			return
		}

		// Step 4: Attach the actor for downstream handlers
		c.Set(actorKey, actor.Actor{
			ID:    userID,
			Email: claims.Email,
			Role:  claims.Role,
		})

		c.Next()
	}
}

// OptionalAuthMiddleware attaches an Actor when a valid token is present
// but lets anonymous requests through
func OptionalAuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := jwtManager.ValidateAccessToken(parts[1]); err == nil {
				if userID, err := uuid.Parse(claims.UserID); err == nil {
					c.Set(actorKey, actor.Actor{
						ID:    userID,
						Email: claims.Email,
						Role:  claims.Role,
					})
				}
			}
		}

		c.Next()
	}
}

// ActorFromContext returns the authenticated actor, if any
func ActorFromContext(c *gin.Context) (actor.Actor, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return actor.Actor{}, false
	}
	a, ok := v.(actor.Actor)
	return a, ok
}
