package usecases

import (
	"context"

	"habitat/internal/domain/notification"
	"habitat/internal/shared/errors"
	"habitat/internal/shared/logger"
)

// MarkAllReadUseCase marks every readable delivery of a recipient as read
// in one pass.
type MarkAllReadUseCase struct {
	deliveries notification.DeliveryRepository
	logger     logger.Interface
}

func NewMarkAllReadUseCase(deliveries notification.DeliveryRepository, logger logger.Interface) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{deliveries: deliveries, logger: logger}
}

func (uc *MarkAllReadUseCase) Execute(ctx context.Context, recipientID uint) error {
	if recipientID == 0 {
		return errors.NewValidationError("recipient ID is required")
	}
	if err := uc.deliveries.MarkAllReadByRecipient(ctx, recipientID); err != nil {
		uc.logger.Errorw("failed to mark deliveries read", "error", err, "recipient_id", recipientID)
		return errors.NewInternalError("failed to mark deliveries read")
	}
	return nil
}
