package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sanadops/sanad-api/internal/domain/repository"
	infraRepo "github.com/sanadops/sanad-api/internal/infrastructure/repository"
	"github.com/sanadops/sanad-api/internal/presentation/http/dto/response"
)

// OrganizationMiddleware validates the token's organization against the
// database. Tokens for unknown or deactivated organizations are rejected
// before any handler runs.
func OrganizationMiddleware(orgRepo repository.OrganizationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := GetOrganizationID(c)
		if orgID == uuid.Nil {
			response.BadRequest(c, "Organization context required")
			c.Abort()
			return
		}

		// Lookup bypasses org scoping: the org row itself is what we are
		// validating
		ctx := infraRepo.WithSkipOrgScope(c.Request.Context(), true)
		org, err := orgRepo.GetByID(ctx, orgID)
		if err != nil || org == nil {
			response.NotFound(c, "Organization not found")
			c.Abort()
			return
		}
		if !org.Active {
			response.Forbidden(c, "Organization is deactivated")
			c.Abort()
			return
		}

		c.Set("organization", org)
		c.Next()
	}
}

// GetOrganizationID retrieves the acting organization ID from gin context
func GetOrganizationID(c *gin.Context) uuid.UUID {
	orgID, exists := c.Get("organization_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := orgID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
