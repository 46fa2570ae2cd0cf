package usecases

import (
	"context"

	"habitat/internal/application/notification/dto"
	"habitat/internal/domain/notification"
	"habitat/internal/shared/errors"
	"habitat/internal/shared/logger"
)

// UnreadCountUseCase counts a recipient's sent or delivered but not yet
// read deliveries, the number behind the in-app badge.
type UnreadCountUseCase struct {
	deliveries notification.DeliveryRepository
	logger     logger.Interface
}

func NewUnreadCountUseCase(deliveries notification.DeliveryRepository, logger logger.Interface) *UnreadCountUseCase {
	return &UnreadCountUseCase{deliveries: deliveries, logger: logger}
}

func (uc *UnreadCountUseCase) Execute(ctx context.Context, recipientID uint) (*dto.UnreadCountResponse, error) {
	if recipientID == 0 {
		return nil, errors.NewValidationError("recipient ID is required")
	}
	count, err := uc.deliveries.CountUnread(ctx, recipientID)
	if err != nil {
		uc.logger.Errorw("failed to count unread deliveries", "error", err, "recipient_id", recipientID)
		return nil, errors.NewInternalError("failed to count unread deliveries")
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}
