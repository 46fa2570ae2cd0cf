package dto

import (
	"time"

	"habitat/internal/domain/notification"
)

// SendRequest is the logical "notify someone" request consumed by every
// other subsystem. Title and body are fallback text used when no template
// matches; Data feeds {{key}} placeholder substitution.
type SendRequest struct {
	MessageType  string
	RecipientIDs []uint
	Channels     []string
	Title        string
	Body         string
	Data         map[string]string
}

// SendToScopeRequest targets every resident with an active membership in an
// organizational scope instead of an explicit recipient list.
type SendToScopeRequest struct {
	MessageType string
	ScopeID     uint
	Channels    []string
	Title       string
	Body        string
	Data        map[string]string
}

// SendReceipt reports the synchronous outcome of a send: how many delivery
// records were created and how many (recipient, channel) pairs were skipped
// by preferences. Delivery outcomes are asynchronous and only observable on
// the records themselves.
type SendReceipt struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type DeliveryResponse struct {
	ID          uint       `json:"id"`
	TenantID    uint       `json:"tenant_id"`
	RecipientID uint       `json:"recipient_id"`
	Channel     string     `json:"channel"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Status      string     `json:"status"`
	RetryCount  int        `json:"retry_count"`
	LastError   *string    `json:"last_error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

func NewDeliveryResponse(d *notification.Delivery) *DeliveryResponse {
	return &DeliveryResponse{
		ID:          d.ID(),
		TenantID:    d.TenantID(),
		RecipientID: d.RecipientID(),
		Channel:     d.Channel().String(),
		Type:        d.Type().String(),
		Title:       d.Title(),
		Body:        d.Body(),
		Status:      d.Status().String(),
		RetryCount:  d.RetryCount(),
		LastError:   d.LastError(),
		CreatedAt:   d.CreatedAt(),
		SentAt:      d.SentAt(),
		ReadAt:      d.ReadAt(),
	}
}

func NewDeliveryResponses(deliveries []*notification.Delivery) []*DeliveryResponse {
	out := make([]*DeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, NewDeliveryResponse(d))
	}
	return out
}

type ListDeliveriesRequest struct {
	RecipientID uint
	Limit       int
	Offset      int
}

type ListResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type SetPreferenceRequest struct {
	RecipientID uint
	Channel     string
	MessageType string
	Enabled     bool
}

type PreferenceResponse struct {
	Channel     string    `json:"channel"`
	MessageType string    `json:"message_type"`
	Enabled     bool      `json:"enabled"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewPreferenceResponse(p *notification.Preference) *PreferenceResponse {
	return &PreferenceResponse{
		Channel:     p.Channel().String(),
		MessageType: p.Type().String(),
		Enabled:     p.Enabled(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

type CreateTemplateRequest struct {
	MessageType string
	Channel     *string
	ScopeID     *uint
	Subject     string
	Body        string
}

type UpdateTemplateRequest struct {
	Subject string
	Body    string
	Active  *bool
}

type TemplateResponse struct {
	ID          uint      `json:"id"`
	MessageType string    `json:"message_type"`
	Channel     *string   `json:"channel,omitempty"`
	ScopeID     *uint     `json:"scope_id,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Body        string    `json:"body"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewTemplateResponse(t *notification.Template) *TemplateResponse {
	var channel *string
	if t.Channel() != nil {
		s := t.Channel().String()
		channel = &s
	}
	return &TemplateResponse{
		ID:          t.ID(),
		MessageType: t.Type().String(),
		Channel:     channel,
		ScopeID:     t.ScopeID(),
		Subject:     t.Subject(),
		Body:        t.Body(),
		Active:      t.Active(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}
