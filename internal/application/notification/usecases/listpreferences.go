package usecases

import (
	"context"

	"habitat/internal/application/notification/dto"
	"habitat/internal/domain/notification"
	"habitat/internal/shared/errors"
	"habitat/internal/shared/logger"
)

// ListPreferencesUseCase returns every stored preference row for a
// recipient. Pairs without a row are implicitly enabled.
type ListPreferencesUseCase struct {
	preferences notification.PreferenceRepository
	logger      logger.Interface
}

func NewListPreferencesUseCase(preferences notification.PreferenceRepository, logger logger.Interface) *ListPreferencesUseCase {
	return &ListPreferencesUseCase{preferences: preferences, logger: logger}
}

func (uc *ListPreferencesUseCase) Execute(ctx context.Context, recipientID uint) ([]*dto.PreferenceResponse, error) {
	if recipientID == 0 {
		return nil, errors.NewValidationError("recipient ID is required")
	}
	preferences, err := uc.preferences.ListByRecipient(ctx, recipientID)
	if err != nil {
		uc.logger.Errorw("failed to list preferences", "error", err, "recipient_id", recipientID)
		return nil, errors.NewInternalError("failed to list preferences")
	}

	out := make([]*dto.PreferenceResponse, 0, len(preferences))
	for _, p := range preferences {
		out = append(out, dto.NewPreferenceResponse(p))
	}
	return out, nil
}
