package models

import (
	"time"

	"gorm.io/gorm"

	"habitat/internal/shared/constants"
)

type ResidentModel struct {
	ID        uint   `gorm:"primaryKey"`
	TenantID  uint   `gorm:"not null;index"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;index"`
	Phone     string `gorm:"size:30"`
	ChatID    int64
	PushToken string `gorm:"size:255"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ResidentModel) TableName() string {
	return constants.TableResidents
}
