package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"habitat/internal/domain/resident"
	"habitat/internal/infrastructure/persistence/mappers"
	"habitat/internal/infrastructure/persistence/models"
	"habitat/internal/shared/constants"
)

type ResidentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ResidentMapper
}

func NewResidentRepository(database *gorm.DB) resident.Repository {
	return &ResidentRepositoryImpl{
		db:     database,
		mapper: mappers.NewResidentMapper(),
	}
}

func (r *ResidentRepositoryImpl) Create(ctx context.Context, res *resident.Resident) error {
	model, err := r.mapper.ToModel(res)
	if err != nil {
		return fmt.Errorf("failed to map resident entity to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create resident: %w", err)
	}

	if err := res.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set resident ID: %w", err)
	}
	return nil
}

func (r *ResidentRepositoryImpl) FindByID(ctx context.Context, id uint) (*resident.Resident, error) {
	var model models.ResidentModel

	query := scopedByTenant(ctx, r.db.WithContext(ctx))
	if err := query.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resident by ID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ResidentRepositoryImpl) FindByIDs(ctx context.Context, ids []uint) ([]*resident.Resident, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var modelList []*models.ResidentModel
	query := scopedByTenant(ctx, r.db.WithContext(ctx))
	if err := query.Where("id IN ?", ids).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to get residents by IDs: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

// FindActiveIDsByScope resolves the audience of a scope-targeted send:
// active residents holding an active membership in the scope.
func (r *ResidentRepositoryImpl) FindActiveIDsByScope(ctx context.Context, scopeID uint) ([]uint, error) {
	var ids []uint

	query := scopedByTenant(ctx, r.db.WithContext(ctx)).
		Model(&models.ResidentModel{}).
		Joins(fmt.Sprintf(
			"JOIN %s sm ON sm.resident_id = %s.id",
			constants.TableScopeMemberships, constants.TableResidents,
		)).
		Where("sm.scope_id = ? AND sm.active = ?", scopeID, true).
		Where(fmt.Sprintf("%s.active = ?", constants.TableResidents), true).
		Distinct().
		Pluck(fmt.Sprintf("%s.id", constants.TableResidents), &ids)
	if query.Error != nil {
		return nil, fmt.Errorf("failed to resolve scope audience: %w", query.Error)
	}

	return ids, nil
}
