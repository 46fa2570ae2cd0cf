package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/infrastructure/persistence/mappers"
	"habitat/internal/infrastructure/persistence/models"
)

type PreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PreferenceMapper
}

func NewPreferenceRepository(database *gorm.DB) notification.PreferenceRepository {
	return &PreferenceRepositoryImpl{
		db:     database,
		mapper: mappers.NewPreferenceMapper(),
	}
}

func (r *PreferenceRepositoryImpl) Find(ctx context.Context, recipientID uint, channel vo.Channel, messageType vo.MessageType) (*notification.Preference, error) {
	var model models.PreferenceModel

	err := scopedByTenant(ctx, r.db.WithContext(ctx)).
		Where("recipient_id = ? AND channel = ? AND type = ?", recipientID, channel.String(), messageType.String()).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find preference: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PreferenceRepositoryImpl) Upsert(ctx context.Context, preference *notification.Preference) error {
	model, err := r.mapper.ToModel(preference)
	if err != nil {
		return fmt.Errorf("failed to map preference entity to model: %w", err)
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "recipient_id"}, {Name: "channel"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert preference: %w", err)
	}

	if preference.ID() == 0 && model.ID != 0 {
		if err := preference.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set preference ID: %w", err)
		}
	}
	return nil
}

func (r *PreferenceRepositoryImpl) ListByRecipient(ctx context.Context, recipientID uint) ([]*notification.Preference, error) {
	var modelList []*models.PreferenceModel

	err := scopedByTenant(ctx, r.db.WithContext(ctx)).
		Where("recipient_id = ?", recipientID).
		Order("channel, type").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}
