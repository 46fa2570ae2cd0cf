package usecases

import (
	"context"

	"habitat/internal/application/notification/dispatch"
	"habitat/internal/application/notification/dto"
	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/domain/resident"
	"habitat/internal/shared/errors"
	"habitat/internal/shared/logger"
)

// SendToScopeUseCase fans a notification out to every resident with an
// active membership in an organizational scope. The scope ID also steers
// template resolution toward scope-specific templates.
type SendToScopeUseCase struct {
	residents resident.Repository
	fanout    *fanOut
	logger    logger.Interface
}

func NewSendToScopeUseCase(
	residents resident.Repository,
	deliveries notification.DeliveryRepository,
	gate *dispatch.PreferenceGate,
	resolver *dispatch.TemplateResolver,
	dispatcher *dispatch.Dispatcher,
	tx TransactionRunner,
	logger logger.Interface,
) *SendToScopeUseCase {
	return &SendToScopeUseCase{
		residents: residents,
		fanout: &fanOut{
			deliveries: deliveries,
			gate:       gate,
			resolver:   resolver,
			dispatcher: dispatcher,
			tx:         tx,
			logger:     logger,
		},
		logger: logger,
	}
}

func (uc *SendToScopeUseCase) Execute(ctx context.Context, req *dto.SendToScopeRequest) (*dto.SendReceipt, error) {
	messageType, err := vo.NewMessageType(req.MessageType)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	channels, err := parseChannels(req.Channels)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if req.ScopeID == 0 {
		return nil, errors.NewValidationError("scope ID is required")
	}

	recipientIDs, err := uc.residents.FindActiveIDsByScope(ctx, req.ScopeID)
	if err != nil {
		uc.logger.Errorw("failed to resolve scope audience", "error", err, "scope_id", req.ScopeID)
		return nil, errors.NewInternalError("failed to resolve scope audience")
	}
	// An empty scope is a successful send to nobody, not an error.
	if len(recipientIDs) == 0 {
		return &dto.SendReceipt{}, nil
	}

	scopeID := req.ScopeID
	created, skipped, err := uc.fanout.run(ctx, fanOutInput{
		messageType: messageType,
		recipients:  recipientIDs,
		channels:    channels,
		scopeID:     &scopeID,
		title:       req.Title,
		body:        req.Body,
		data:        req.Data,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("scope fan-out complete",
		"type", messageType.String(),
		"scope_id", req.ScopeID,
		"recipients", len(recipientIDs),
		"created", created,
		"skipped", skipped,
	)
	return &dto.SendReceipt{Created: created, Skipped: skipped}, nil
}
