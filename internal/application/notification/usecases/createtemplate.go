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

// CreateTemplateUseCase registers a new active template. A nil channel
// makes it channel-agnostic; a nil scope ID makes it global.
type CreateTemplateUseCase struct {
	templates notification.TemplateRepository
	logger    logger.Interface
}

func NewCreateTemplateUseCase(templates notification.TemplateRepository, logger logger.Interface) *CreateTemplateUseCase {
	return &CreateTemplateUseCase{templates: templates, logger: logger}
}

func (uc *CreateTemplateUseCase) Execute(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	messageType, err := vo.NewMessageType(req.MessageType)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var channel *vo.Channel
	if req.Channel != nil {
		c, err := vo.NewChannel(*req.Channel)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		channel = &c
	}

	tenantID, _ := tenant.FromContext(ctx)
	template, err := notification.NewTemplate(tenantID, messageType, channel, req.ScopeID, req.Subject, req.Body)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.templates.Create(ctx, template); err != nil {
		uc.logger.Errorw("failed to create template", "error", err, "type", messageType.String())
		return nil, errors.NewInternalError("failed to create template")
	}

	return dto.NewTemplateResponse(template), nil
}
