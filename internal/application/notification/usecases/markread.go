package usecases

import (
	"context"

	"habitat/internal/domain/notification"
	"habitat/internal/shared/errors"
	"habitat/internal/shared/logger"
)

// MarkReadUseCase marks a single delivery as read on behalf of its
// recipient. Only SENT or DELIVERED records are readable; marking an
// already-read record again is a no-op.
type MarkReadUseCase struct {
	deliveries notification.DeliveryRepository
	logger     logger.Interface
}

func NewMarkReadUseCase(deliveries notification.DeliveryRepository, logger logger.Interface) *MarkReadUseCase {
	return &MarkReadUseCase{deliveries: deliveries, logger: logger}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, deliveryID, recipientID uint) error {
	delivery, err := uc.deliveries.FindByID(ctx, deliveryID)
	if err != nil {
		uc.logger.Errorw("failed to load delivery", "error", err, "delivery_id", deliveryID)
		return errors.NewInternalError("failed to load delivery")
	}
	if delivery == nil {
		return errors.NewNotFoundError("delivery not found")
	}
	if delivery.RecipientID() != recipientID {
		return errors.NewForbiddenError("delivery belongs to another recipient")
	}

	if err := delivery.MarkRead(); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.deliveries.Update(ctx, delivery); err != nil {
		uc.logger.Errorw("failed to update delivery", "error", err, "delivery_id", deliveryID)
		return errors.NewInternalError("failed to update delivery")
	}
	return nil
}
