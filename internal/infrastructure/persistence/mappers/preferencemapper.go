package mappers

import (
	"fmt"

	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/infrastructure/persistence/models"
	"habitat/internal/shared/mapper"
)

type PreferenceMapper interface {
	ToEntity(model *models.PreferenceModel) (*notification.Preference, error)
	ToModel(entity *notification.Preference) (*models.PreferenceModel, error)
	ToEntities(models []*models.PreferenceModel) ([]*notification.Preference, error)
}

type PreferenceMapperImpl struct{}

func NewPreferenceMapper() PreferenceMapper {
	return &PreferenceMapperImpl{}
}

func (m *PreferenceMapperImpl) ToEntity(model *models.PreferenceModel) (*notification.Preference, error) {
	if model == nil {
		return nil, nil
	}

	channel, err := vo.NewChannel(model.Channel)
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}
	messageType, err := vo.NewMessageType(model.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to create message type: %w", err)
	}

	entity, err := notification.ReconstructPreference(
		model.ID,
		model.TenantID,
		model.RecipientID,
		channel,
		messageType,
		model.Enabled,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct preference entity: %w", err)
	}
	return entity, nil
}

func (m *PreferenceMapperImpl) ToModel(entity *notification.Preference) (*models.PreferenceModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PreferenceModel{
		ID:          entity.ID(),
		TenantID:    entity.TenantID(),
		RecipientID: entity.RecipientID(),
		Channel:     entity.Channel().String(),
		Type:        entity.Type().String(),
		Enabled:     entity.Enabled(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *PreferenceMapperImpl) ToEntities(modelList []*models.PreferenceModel) ([]*notification.Preference, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.PreferenceModel) uint { return model.ID })
}
