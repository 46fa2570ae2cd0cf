package usecases

import (
	"context"

	"habitat/internal/application/notification/dto"
	"habitat/internal/domain/notification"
	"habitat/internal/shared/errors"
	"habitat/internal/shared/logger"
)

type ListTemplatesUseCase struct {
	templates notification.TemplateRepository
	logger    logger.Interface
}

func NewListTemplatesUseCase(templates notification.TemplateRepository, logger logger.Interface) *ListTemplatesUseCase {
	return &ListTemplatesUseCase{templates: templates, logger: logger}
}

func (uc *ListTemplatesUseCase) Execute(ctx context.Context, limit, offset int) (*dto.ListResponse, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	templates, total, err := uc.templates.List(ctx, limit, offset)
	if err != nil {
		uc.logger.Errorw("failed to list templates", "error", err)
		return nil, errors.NewInternalError("failed to list templates")
	}

	items := make([]*dto.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		items = append(items, dto.NewTemplateResponse(t))
	}
	return &dto.ListResponse{Items: items, Total: total}, nil
}
