package models

import (
	"time"

	"habitat/internal/shared/constants"
)

type PreferenceModel struct {
	ID          uint   `gorm:"primaryKey"`
	TenantID    uint   `gorm:"not null;uniqueIndex:idx_tenant_recipient_channel_type"`
	RecipientID uint   `gorm:"not null;uniqueIndex:idx_tenant_recipient_channel_type"`
	Channel     string `gorm:"size:20;not null;uniqueIndex:idx_tenant_recipient_channel_type"`
	Type        string `gorm:"size:50;not null;uniqueIndex:idx_tenant_recipient_channel_type"`
	Enabled     bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PreferenceModel) TableName() string {
	return constants.TablePreferences
}
