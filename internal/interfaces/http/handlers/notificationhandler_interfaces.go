package handlers

import (
	"context"

	"habitat/internal/application/notification/dto"
)

// Service interface for NotificationHandler - enables unit testing with mocks.

type notificationService interface {
	Send(ctx context.Context, req *dto.SendRequest) (*dto.SendReceipt, error)
	SendToScope(ctx context.Context, req *dto.SendToScopeRequest) (*dto.SendReceipt, error)

	ListDeliveries(ctx context.Context, req *dto.ListDeliveriesRequest) (*dto.ListResponse, error)
	UnreadCount(ctx context.Context, recipientID uint) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, deliveryID, recipientID uint) error
	MarkAllRead(ctx context.Context, recipientID uint) error

	SetPreference(ctx context.Context, req *dto.SetPreferenceRequest) (*dto.PreferenceResponse, error)
	ListPreferences(ctx context.Context, recipientID uint) ([]*dto.PreferenceResponse, error)

	CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	UpdateTemplate(ctx context.Context, id uint, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error)
	ListTemplates(ctx context.Context, limit, offset int) (*dto.ListResponse, error)
}
