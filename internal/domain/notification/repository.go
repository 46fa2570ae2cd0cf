package notification

import (
	"context"

	vo "habitat/internal/domain/notification/valueobjects"
)

type DeliveryRepository interface {
	Create(ctx context.Context, delivery *Delivery) error
	Update(ctx context.Context, delivery *Delivery) error
	FindByID(ctx context.Context, id uint) (*Delivery, error)
	FindByRecipient(ctx context.Context, recipientID uint, limit, offset int) ([]*Delivery, int64, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
	// FindRetryable returns pending records whose retry count is below
	// maxRetries, oldest first, up to limit.
	FindRetryable(ctx context.Context, maxRetries, limit int) ([]*Delivery, error)
	MarkAllReadByRecipient(ctx context.Context, recipientID uint) error
}

type PreferenceRepository interface {
	// Find returns nil (not an error) when no preference row exists.
	Find(ctx context.Context, recipientID uint, channel vo.Channel, messageType vo.MessageType) (*Preference, error)
	Upsert(ctx context.Context, preference *Preference) error
	ListByRecipient(ctx context.Context, recipientID uint) ([]*Preference, error)
}

type TemplateRepository interface {
	Create(ctx context.Context, template *Template) error
	Update(ctx context.Context, template *Template) error
	FindByID(ctx context.Context, id uint) (*Template, error)
	// FindActive looks up the single active template for the exact
	// (type, channel, scope) cell. A nil channel matches channel-agnostic
	// rows, a nil scopeID matches tenant-global rows; nil is returned when
	// the cell is empty.
	FindActive(ctx context.Context, messageType vo.MessageType, channel *vo.Channel, scopeID *uint) (*Template, error)
	List(ctx context.Context, limit, offset int) ([]*Template, int64, error)
}
