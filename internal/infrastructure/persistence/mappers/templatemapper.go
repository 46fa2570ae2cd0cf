package mappers

import (
	"fmt"

	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/infrastructure/persistence/models"
	"habitat/internal/shared/mapper"
)

type TemplateMapper interface {
	ToEntity(model *models.TemplateModel) (*notification.Template, error)
	ToModel(entity *notification.Template) (*models.TemplateModel, error)
	ToEntities(models []*models.TemplateModel) ([]*notification.Template, error)
}

type TemplateMapperImpl struct{}

func NewTemplateMapper() TemplateMapper {
	return &TemplateMapperImpl{}
}

func (m *TemplateMapperImpl) ToEntity(model *models.TemplateModel) (*notification.Template, error) {
	if model == nil {
		return nil, nil
	}

	messageType, err := vo.NewMessageType(model.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to create message type: %w", err)
	}

	var channel *vo.Channel
	if model.Channel != nil {
		c, err := vo.NewChannel(*model.Channel)
		if err != nil {
			return nil, fmt.Errorf("failed to create channel: %w", err)
		}
		channel = &c
	}

	entity, err := notification.ReconstructTemplate(
		model.ID,
		model.TenantID,
		messageType,
		channel,
		model.ScopeID,
		model.Subject,
		model.Body,
		model.Active,
		1,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct template entity: %w", err)
	}
	return entity, nil
}

func (m *TemplateMapperImpl) ToModel(entity *notification.Template) (*models.TemplateModel, error) {
	if entity == nil {
		return nil, nil
	}

	var channel *string
	if entity.Channel() != nil {
		s := entity.Channel().String()
		channel = &s
	}

	return &models.TemplateModel{
		ID:        entity.ID(),
		TenantID:  entity.TenantID(),
		Type:      entity.Type().String(),
		Channel:   channel,
		ScopeID:   entity.ScopeID(),
		Subject:   entity.Subject(),
		Body:      entity.Body(),
		Active:    entity.Active(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}, nil
}

func (m *TemplateMapperImpl) ToEntities(modelList []*models.TemplateModel) ([]*notification.Template, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.TemplateModel) uint { return model.ID })
}
