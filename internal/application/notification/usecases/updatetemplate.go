package usecases

import (
	"context"

	"habitat/internal/application/notification/dto"
	"habitat/internal/domain/notification"
	"habitat/internal/shared/errors"
	"habitat/internal/shared/logger"
)

// UpdateTemplateUseCase edits a template's text or toggles it active.
// Existing delivery records keep their snapshot; edits only affect future
// sends.
type UpdateTemplateUseCase struct {
	templates notification.TemplateRepository
	logger    logger.Interface
}

func NewUpdateTemplateUseCase(templates notification.TemplateRepository, logger logger.Interface) *UpdateTemplateUseCase {
	return &UpdateTemplateUseCase{templates: templates, logger: logger}
}

func (uc *UpdateTemplateUseCase) Execute(ctx context.Context, id uint, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	template, err := uc.templates.FindByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to load template", "error", err, "template_id", id)
		return nil, errors.NewInternalError("failed to load template")
	}
	if template == nil {
		return nil, errors.NewNotFoundError("template not found")
	}

	if err := template.Update(req.Subject, req.Body); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if req.Active != nil {
		if *req.Active {
			template.Activate()
		} else {
			template.Deactivate()
		}
	}

	if err := uc.templates.Update(ctx, template); err != nil {
		uc.logger.Errorw("failed to update template", "error", err, "template_id", id)
		return nil, errors.NewInternalError("failed to update template")
	}

	return dto.NewTemplateResponse(template), nil
}
