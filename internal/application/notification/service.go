// Package notification wires the notification use cases behind a single
// service facade consumed by the HTTP handlers and CLI commands.
package notification

import (
	"context"

	"habitat/internal/application/notification/dispatch"
	"habitat/internal/application/notification/dto"
	"habitat/internal/application/notification/usecases"
	"habitat/internal/domain/notification"
	"habitat/internal/domain/resident"
	"habitat/internal/shared/logger"
)

// Service exposes every notification operation. Handlers depend on this
// facade instead of the individual use cases.
type Service struct {
	send            *usecases.SendUseCase
	sendToScope     *usecases.SendToScopeUseCase
	markRead        *usecases.MarkReadUseCase
	markAllRead     *usecases.MarkAllReadUseCase
	listDeliveries  *usecases.ListDeliveriesUseCase
	unreadCount     *usecases.UnreadCountUseCase
	setPreference   *usecases.SetPreferenceUseCase
	listPreferences *usecases.ListPreferencesUseCase
	createTemplate  *usecases.CreateTemplateUseCase
	updateTemplate  *usecases.UpdateTemplateUseCase
	listTemplates   *usecases.ListTemplatesUseCase
}

func NewService(
	residents resident.Repository,
	deliveries notification.DeliveryRepository,
	preferences notification.PreferenceRepository,
	templates notification.TemplateRepository,
	gate *dispatch.PreferenceGate,
	resolver *dispatch.TemplateResolver,
	dispatcher *dispatch.Dispatcher,
	tx usecases.TransactionRunner,
	logger logger.Interface,
) *Service {
	return &Service{
		send:            usecases.NewSendUseCase(residents, deliveries, gate, resolver, dispatcher, tx, logger),
		sendToScope:     usecases.NewSendToScopeUseCase(residents, deliveries, gate, resolver, dispatcher, tx, logger),
		markRead:        usecases.NewMarkReadUseCase(deliveries, logger),
		markAllRead:     usecases.NewMarkAllReadUseCase(deliveries, logger),
		listDeliveries:  usecases.NewListDeliveriesUseCase(deliveries, logger),
		unreadCount:     usecases.NewUnreadCountUseCase(deliveries, logger),
		setPreference:   usecases.NewSetPreferenceUseCase(preferences, logger),
		listPreferences: usecases.NewListPreferencesUseCase(preferences, logger),
		createTemplate:  usecases.NewCreateTemplateUseCase(templates, logger),
		updateTemplate:  usecases.NewUpdateTemplateUseCase(templates, logger),
		listTemplates:   usecases.NewListTemplatesUseCase(templates, logger),
	}
}

func (s *Service) Send(ctx context.Context, req *dto.SendRequest) (*dto.SendReceipt, error) {
	return s.send.Execute(ctx, req)
}

func (s *Service) SendToScope(ctx context.Context, req *dto.SendToScopeRequest) (*dto.SendReceipt, error) {
	return s.sendToScope.Execute(ctx, req)
}

func (s *Service) MarkRead(ctx context.Context, deliveryID, recipientID uint) error {
	return s.markRead.Execute(ctx, deliveryID, recipientID)
}

func (s *Service) MarkAllRead(ctx context.Context, recipientID uint) error {
	return s.markAllRead.Execute(ctx, recipientID)
}

func (s *Service) ListDeliveries(ctx context.Context, req *dto.ListDeliveriesRequest) (*dto.ListResponse, error) {
	return s.listDeliveries.Execute(ctx, req)
}

func (s *Service) UnreadCount(ctx context.Context, recipientID uint) (*dto.UnreadCountResponse, error) {
	return s.unreadCount.Execute(ctx, recipientID)
}

func (s *Service) SetPreference(ctx context.Context, req *dto.SetPreferenceRequest) (*dto.PreferenceResponse, error) {
	return s.setPreference.Execute(ctx, req)
}

func (s *Service) ListPreferences(ctx context.Context, recipientID uint) ([]*dto.PreferenceResponse, error) {
	return s.listPreferences.Execute(ctx, recipientID)
}

func (s *Service) CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	return s.createTemplate.Execute(ctx, req)
}

func (s *Service) UpdateTemplate(ctx context.Context, id uint, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	return s.updateTemplate.Execute(ctx, id, req)
}

func (s *Service) ListTemplates(ctx context.Context, limit, offset int) (*dto.ListResponse, error) {
	return s.listTemplates.Execute(ctx, limit, offset)
}
