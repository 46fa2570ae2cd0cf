package models

import (
	"time"

	"habitat/internal/shared/constants"
)

// ScopeMembershipModel links a resident to an organizational scope
// (building, community, HOA). Scope-targeted sends resolve their audience
// through active rows of this table.
type ScopeMembershipModel struct {
	ID         uint `gorm:"primaryKey"`
	TenantID   uint `gorm:"not null"`
	ScopeID    uint `gorm:"not null;uniqueIndex:idx_scope_resident"`
	ResidentID uint `gorm:"not null;uniqueIndex:idx_scope_resident"`
	Active     bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ScopeMembershipModel) TableName() string {
	return constants.TableScopeMemberships
}
