package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/infrastructure/persistence/mappers"
	"habitat/internal/infrastructure/persistence/models"
	"habitat/internal/shared/db"
	"habitat/internal/shared/errors"
)

type DeliveryRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.DeliveryMapper
}

func NewDeliveryRepository(database *gorm.DB) notification.DeliveryRepository {
	return &DeliveryRepositoryImpl{
		db:     database,
		mapper: mappers.NewDeliveryMapper(),
	}
}

func (r *DeliveryRepositoryImpl) Create(ctx context.Context, delivery *notification.Delivery) error {
	model, err := r.mapper.ToModel(delivery)
	if err != nil {
		return fmt.Errorf("failed to map delivery entity to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create delivery: %w", err)
	}

	if err := delivery.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set delivery ID: %w", err)
	}
	return nil
}

func (r *DeliveryRepositoryImpl) Update(ctx context.Context, delivery *notification.Delivery) error {
	model, err := r.mapper.ToModel(delivery)
	if err != nil {
		return fmt.Errorf("failed to map delivery entity to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	result := conn.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update delivery: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("delivery not found")
	}
	return nil
}

func (r *DeliveryRepositoryImpl) FindByID(ctx context.Context, id uint) (*notification.Delivery, error) {
	var model models.DeliveryModel

	query := scopedByTenant(ctx, r.db.WithContext(ctx))
	if err := query.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get delivery by ID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *DeliveryRepositoryImpl) FindByRecipient(ctx context.Context, recipientID uint, limit, offset int) ([]*notification.Delivery, int64, error) {
	query := scopedByTenant(ctx, r.db.WithContext(ctx)).
		Model(&models.DeliveryModel{}).
		Where("recipient_id = ?", recipientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count deliveries: %w", err)
	}

	var modelList []*models.DeliveryModel
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list deliveries: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *DeliveryRepositoryImpl) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := scopedByTenant(ctx, r.db.WithContext(ctx)).
		Model(&models.DeliveryModel{}).
		Where("recipient_id = ?", recipientID).
		Where("status IN ?", []string{
			vo.DeliveryStatusSent.String(),
			vo.DeliveryStatusDelivered.String(),
		}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread deliveries: %w", err)
	}
	return count, nil
}

// FindRetryable returns every pending record still below the retry cap,
// oldest first. Zero-attempt records are included so deliveries stranded in
// the in-memory queue by a restart get picked up by the sweep; a record the
// pool is already working on is claimed via BeginSending before sending.
func (r *DeliveryRepositoryImpl) FindRetryable(ctx context.Context, maxRetries, limit int) ([]*notification.Delivery, error) {
	var modelList []*models.DeliveryModel

	query := r.db.WithContext(ctx).
		Where("status = ?", vo.DeliveryStatusPending.String()).
		Where("retry_count < ?", maxRetries).
		Order("updated_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to find retryable deliveries: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *DeliveryRepositoryImpl) MarkAllReadByRecipient(ctx context.Context, recipientID uint) error {
	now := time.Now()
	err := scopedByTenant(ctx, r.db.WithContext(ctx)).
		Model(&models.DeliveryModel{}).
		Where("recipient_id = ?", recipientID).
		Where("status IN ?", []string{
			vo.DeliveryStatusSent.String(),
			vo.DeliveryStatusDelivered.String(),
		}).
		Updates(map[string]interface{}{
			"status":  vo.DeliveryStatusRead.String(),
			"read_at": now,
			"version": gorm.Expr("version + 1"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark deliveries read: %w", err)
	}
	return nil
}
