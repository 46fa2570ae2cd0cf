package usecases

import (
	"context"

	"habitat/internal/application/notification/dto"
	"habitat/internal/domain/notification"
	"habitat/internal/shared/errors"
	"habitat/internal/shared/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListDeliveriesUseCase pages through a recipient's deliveries, newest
// first.
type ListDeliveriesUseCase struct {
	deliveries notification.DeliveryRepository
	logger     logger.Interface
}

func NewListDeliveriesUseCase(deliveries notification.DeliveryRepository, logger logger.Interface) *ListDeliveriesUseCase {
	return &ListDeliveriesUseCase{deliveries: deliveries, logger: logger}
}

func (uc *ListDeliveriesUseCase) Execute(ctx context.Context, req *dto.ListDeliveriesRequest) (*dto.ListResponse, error) {
	if req.RecipientID == 0 {
		return nil, errors.NewValidationError("recipient ID is required")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	deliveries, total, err := uc.deliveries.FindByRecipient(ctx, req.RecipientID, limit, offset)
	if err != nil {
		uc.logger.Errorw("failed to list deliveries", "error", err, "recipient_id", req.RecipientID)
		return nil, errors.NewInternalError("failed to list deliveries")
	}

	return &dto.ListResponse{
		Items: dto.NewDeliveryResponses(deliveries),
		Total: total,
	}, nil
}
