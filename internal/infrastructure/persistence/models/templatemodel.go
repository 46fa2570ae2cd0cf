package models

import (
	"time"

	"gorm.io/gorm"

	"habitat/internal/shared/constants"
)

type TemplateModel struct {
	ID        uint    `gorm:"primaryKey"`
	TenantID  uint    `gorm:"not null"`
	Type      string  `gorm:"size:50;not null;index:idx_type_lookup"`
	Channel   *string `gorm:"size:20;index:idx_type_lookup"`
	ScopeID   *uint   `gorm:"index:idx_type_lookup"`
	Subject   string  `gorm:"size:255"`
	Body      string  `gorm:"type:text;not null"`
	Active    bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (TemplateModel) TableName() string {
	return constants.TableTemplates
}
