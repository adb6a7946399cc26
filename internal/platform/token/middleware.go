package token

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bugdash_backend/internal/api"
	"bugdash_backend/internal/feature/auth/domain/entity"
)

// ContextUser is the Gin context key holding the authenticated user.
const ContextUser = "authUser"

// UserLookup resolves an authenticated user id to its account record.
// Following Go convention, the interface is defined by the consumer
// (this middleware), not the provider (auth adapters).
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// AuthRequired returns a Gin middleware that admits only requests
// carrying a valid access token for an existing user. The resolved user
// is attached to the context for downstream handlers. Failure is
// terminal for the request; there are no retries.
func AuthRequired(tokens *Service, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ExtractBearer(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authorized, no token"})
			return
		}

		claims, err := tokens.VerifyAccessToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Token invalid or expired"})
			return
		}

		id, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Token invalid or expired"})
			return
		}

		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			slog.Warn("auth user lookup failed", "error", err, "user_id", id, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Not authorized"})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by AuthRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}
