package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/infrastructure/persistence/models"
	"habitat/internal/shared/mapper"
)

type DeliveryMapper interface {
	ToEntity(model *models.DeliveryModel) (*notification.Delivery, error)
	ToModel(entity *notification.Delivery) (*models.DeliveryModel, error)
	ToEntities(models []*models.DeliveryModel) ([]*notification.Delivery, error)
}

type DeliveryMapperImpl struct{}

func NewDeliveryMapper() DeliveryMapper {
	return &DeliveryMapperImpl{}
}

func (m *DeliveryMapperImpl) ToEntity(model *models.DeliveryModel) (*notification.Delivery, error) {
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
	status, err := vo.NewDeliveryStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery status: %w", err)
	}

	entity, err := notification.ReconstructDelivery(
		model.ID,
		model.TenantID,
		model.RecipientID,
		channel,
		messageType,
		model.Title,
		model.Body,
		jsonMapToData(model.Data),
		status,
		model.RetryCount,
		model.LastError,
		model.SentAt,
		model.ReadAt,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct delivery entity: %w", err)
	}
	return entity, nil
}

func (m *DeliveryMapperImpl) ToModel(entity *notification.Delivery) (*models.DeliveryModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.DeliveryModel{
		ID:          entity.ID(),
		TenantID:    entity.TenantID(),
		RecipientID: entity.RecipientID(),
		Channel:     entity.Channel().String(),
		Type:        entity.Type().String(),
		Title:       entity.Title(),
		Body:        entity.Body(),
		Data:        dataToJSONMap(entity.Data()),
		Status:      entity.Status().String(),
		RetryCount:  entity.RetryCount(),
		LastError:   entity.LastError(),
		SentAt:      entity.SentAt(),
		ReadAt:      entity.ReadAt(),
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *DeliveryMapperImpl) ToEntities(modelList []*models.DeliveryModel) ([]*notification.Delivery, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.DeliveryModel) uint { return model.ID })
}

func dataToJSONMap(data map[string]string) datatypes.JSONMap {
	if len(data) == 0 {
		return nil
	}
	out := make(datatypes.JSONMap, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

func jsonMapToData(raw datatypes.JSONMap) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
