package usecases

import (
	"context"

	"habitat/internal/application/notification/dto"
	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/shared/errors"
	"habitat/internal/shared/logger"
	"habitat/internal/shared/tenant"
)

// SetPreferenceUseCase stores a recipient's opt-in or opt-out for one
// (channel, message type) pair. Stored flags for the in-app channel and
// for announcements are accepted but never suppress delivery.
type SetPreferenceUseCase struct {
	preferences notification.PreferenceRepository
	logger      logger.Interface
}

func NewSetPreferenceUseCase(preferences notification.PreferenceRepository, logger logger.Interface) *SetPreferenceUseCase {
	return &SetPreferenceUseCase{preferences: preferences, logger: logger}
}

func (uc *SetPreferenceUseCase) Execute(ctx context.Context, req *dto.SetPreferenceRequest) (*dto.PreferenceResponse, error) {
	channel, err := vo.NewChannel(req.Channel)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	messageType, err := vo.NewMessageType(req.MessageType)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	tenantID, _ := tenant.FromContext(ctx)
	preference, err := notification.NewPreference(tenantID, req.RecipientID, channel, messageType, req.Enabled)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.preferences.Upsert(ctx, preference); err != nil {
		uc.logger.Errorw("failed to store preference", "error", err,
			"recipient_id", req.RecipientID, "channel", channel.String(), "type", messageType.String())
		return nil, errors.NewInternalError("failed to store preference")
	}

	return dto.NewPreferenceResponse(preference), nil
}
