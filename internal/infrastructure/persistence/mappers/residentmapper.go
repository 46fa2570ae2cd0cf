package mappers

import (
	"fmt"

	"habitat/internal/domain/resident"
	"habitat/internal/infrastructure/persistence/models"
	"habitat/internal/shared/mapper"
)

type ResidentMapper interface {
	ToEntity(model *models.ResidentModel) (*resident.Resident, error)
	ToModel(entity *resident.Resident) (*models.ResidentModel, error)
	ToEntities(models []*models.ResidentModel) ([]*resident.Resident, error)
}

type ResidentMapperImpl struct{}

func NewResidentMapper() ResidentMapper {
	return &ResidentMapperImpl{}
}

func (m *ResidentMapperImpl) ToEntity(model *models.ResidentModel) (*resident.Resident, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := resident.ReconstructResident(
		model.ID,
		model.TenantID,
		model.Name,
		model.Email,
		model.Phone,
		model.ChatID,
		model.PushToken,
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct resident entity: %w", err)
	}
	return entity, nil
}

func (m *ResidentMapperImpl) ToModel(entity *resident.Resident) (*models.ResidentModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.ResidentModel{
		ID:        entity.ID(),
		TenantID:  entity.TenantID(),
		Name:      entity.Name(),
		Email:     entity.Email(),
		Phone:     entity.Phone(),
		ChatID:    entity.ChatID(),
		PushToken: entity.PushToken(),
		Active:    entity.Active(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}, nil
}

func (m *ResidentMapperImpl) ToEntities(modelList []*models.ResidentModel) ([]*resident.Resident, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.ResidentModel) uint { return model.ID })
}
