package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// OrganizationIDKey is the context key for the acting organization
	OrganizationIDKey ctxKey = "organization_id"
	// SkipOrgScopeKey is the context key for skipping org scoping (back-office admins)
	SkipOrgScopeKey ctxKey = "skip_org_scope"
)

// OrgScope returns a GORM scope that filters by organization. Applied to
// every query over org-owned rows (customers, tickets, invoices). A missing
// org context fails closed and matches nothing, so one organization can
// never read another's data by accident.
func OrgScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skip, ok := ctx.Value(SkipOrgScopeKey).(bool); ok && skip {
			return db
		}

		orgID, ok := ctx.Value(OrganizationIDKey).(uuid.UUID)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("organization_id = ?", orgID)
	}
}

// WithSkipOrgScope adds the skip-org-scope flag to context (admin tooling)
func WithSkipOrgScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipOrgScopeKey, skip)
}

// WithOrganization adds the acting organization to context
func WithOrganization(ctx context.Context, orgID uuid.UUID) context.Context {
	return context.WithValue(ctx, OrganizationIDKey, orgID)
}

// GetOrganizationID extracts the acting organization from context
func GetOrganizationID(ctx context.Context) (uuid.UUID, bool) {
	orgID, ok := ctx.Value(OrganizationIDKey).(uuid.UUID)
	return orgID, ok
}
