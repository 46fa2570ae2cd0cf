package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/infrastructure/persistence/mappers"
	"habitat/internal/infrastructure/persistence/models"
	"habitat/internal/shared/errors"
)

type TemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TemplateMapper
}

func NewTemplateRepository(database *gorm.DB) notification.TemplateRepository {
	return &TemplateRepositoryImpl{
		db:     database,
		mapper: mappers.NewTemplateMapper(),
	}
}

func (r *TemplateRepositoryImpl) Create(ctx context.Context, template *notification.Template) error {
	model, err := r.mapper.ToModel(template)
	if err != nil {
		return fmt.Errorf("failed to map template entity to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	if err := template.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set template ID: %w", err)
	}
	return nil
}

func (r *TemplateRepositoryImpl) Update(ctx context.Context, template *notification.Template) error {
	model, err := r.mapper.ToModel(template)
	if err != nil {
		return fmt.Errorf("failed to map template entity to model: %w", err)
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update template: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("template not found")
	}
	return nil
}

func (r *TemplateRepositoryImpl) FindByID(ctx context.Context, id uint) (*notification.Template, error) {
	var model models.TemplateModel

	query := scopedByTenant(ctx, r.db.WithContext(ctx))
	if err := query.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get template by ID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// FindActive looks up the single active template at one exact position of
// the fallback chain. A nil channel or scope ID matches only rows where the
// column itself is NULL.
func (r *TemplateRepositoryImpl) FindActive(ctx context.Context, messageType vo.MessageType, channel *vo.Channel, scopeID *uint) (*notification.Template, error) {
	query := scopedByTenant(ctx, r.db.WithContext(ctx)).
		Where("type = ? AND active = ?", messageType.String(), true)

	if channel != nil {
		query = query.Where("channel = ?", channel.String())
	} else {
		query = query.Where("channel IS NULL")
	}
	if scopeID != nil {
		query = query.Where("scope_id = ?", *scopeID)
	} else {
		query = query.Where("scope_id IS NULL")
	}

	var model models.TemplateModel
	if err := query.Order("updated_at DESC").First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active template: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *TemplateRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*notification.Template, int64, error) {
	query := scopedByTenant(ctx, r.db.WithContext(ctx)).Model(&models.TemplateModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count templates: %w", err)
	}

	var modelList []*models.TemplateModel
	query = query.Order("type, scope_id, channel")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list templates: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}
