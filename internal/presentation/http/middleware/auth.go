package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	infraRepo "github.com/sanadops/sanad-api/internal/infrastructure/repository"
	"github.com/sanadops/sanad-api/internal/presentation/http/dto/response"
	"github.com/sanadops/sanad-api/pkg/utils"
)

// ActorMiddleware verifies the upstream-issued actor token and stores the
// acting staff member and their organization in the request context. All
// org-scoped queries downstream key off the organization set here.
func ActorMiddleware(verifier *utils.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := verifier.Verify(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// Set actor info in context
		c.Set("actor_id", claims.ActorID)
		c.Set("actor_email", claims.Email)
		c.Set("actor_roles", claims.Roles)
		c.Set("organization_id", claims.OrganizationID)

		// Also set the organization in the request context so repositories
		// scope their queries
		ctx := infraRepo.WithOrganization(c.Request.Context(), claims.OrganizationID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorRoles, exists := c.Get("actor_roles")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		roleList, ok := actorRoles.([]string)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		hasRole := false
		for _, actorRole := range roleList {
			for _, required := range roles {
				if actorRole == required {
					hasRole = true
					break
				}
			}
			if hasRole {
				break
			}
		}

		if !hasRole {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}

		c.Next()
	}
}
