package repository

import (
	"context"

	"gorm.io/gorm"

	"habitat/internal/shared/tenant"
)

// scopedByTenant narrows a query to the tenant carried on ctx. Queries
// without a tenant scope (worker sweep bootstrap, migrations) see all rows.
func scopedByTenant(ctx context.Context, query *gorm.DB) *gorm.DB {
	if tenantID, ok := tenant.FromContext(ctx); ok {
		return query.Where("tenant_id = ?", tenantID)
	}
	return query
}
