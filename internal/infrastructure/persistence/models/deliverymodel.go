package models

import (
	"time"

	"gorm.io/datatypes"

	"habitat/internal/shared/constants"
)

type DeliveryModel struct {
	ID          uint   `gorm:"primaryKey"`
	TenantID    uint   `gorm:"not null;index:idx_tenant_status"`
	RecipientID uint   `gorm:"not null;index:idx_recipient_status"`
	Channel     string `gorm:"size:20;not null"`
	Type        string `gorm:"size:50;not null"`
	Title       string `gorm:"size:255;not null"`
	Body        string `gorm:"type:text;not null"`
	Data        datatypes.JSONMap
	Status      string `gorm:"size:20;not null;default:'pending';index:idx_tenant_status;index:idx_recipient_status"`
	RetryCount  int    `gorm:"not null;default:0"`
	LastError   *string
	SentAt      *time.Time
	ReadAt      *time.Time
	Version     int       `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (DeliveryModel) TableName() string {
	return constants.TableDeliveries
}
