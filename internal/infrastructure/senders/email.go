// Package senders provides the per-channel transport integrations used by
// the dispatcher. Each sender resolves the recipient's contact point and
// classifies failures so the dispatcher can decide between retrying and
// failing terminally.
package senders

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"habitat/internal/application/notification/dispatch"
	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/domain/resident"
	"habitat/internal/shared/config"
	"habitat/internal/shared/logger"
	"habitat/internal/shared/services/markdown"
)

type EmailSender struct {
	cfg       config.EmailConfig
	dialer    *gomail.Dialer
	residents resident.Repository
	markdown  markdown.Service
	logger    logger.Interface
}

func NewEmailSender(
	cfg config.EmailConfig,
	residents resident.Repository,
	markdownSvc markdown.Service,
	logger logger.Interface,
) *EmailSender {
	var dialer *gomail.Dialer
	if cfg.Host != "" {
		dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}

	return &EmailSender{
		cfg:       cfg,
		dialer:    dialer,
		residents: residents,
		markdown:  markdownSvc,
		logger:    logger,
	}
}

func (s *EmailSender) Channel() vo.Channel {
	return vo.ChannelEmail
}

func (s *EmailSender) Send(ctx context.Context, delivery *notification.Delivery) error {
	if s.dialer == nil {
		return dispatch.NewConfigurationError("SMTP is not configured")
	}

	res, err := s.residents.FindByID(ctx, delivery.RecipientID())
	if err != nil {
		return dispatch.NewTransientError("failed to load recipient", err)
	}
	if res == nil || res.Email() == "" {
		return dispatch.NewConfigurationError("recipient has no email address")
	}

	htmlBody, err := s.markdown.ToHTMLSanitized(delivery.Body())
	if err != nil {
		s.logger.Warnw("failed to render email body as markdown, sending plain text",
			"error", err, "delivery_id", delivery.ID())
		htmlBody = ""
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.FromAddress, s.cfg.FromName))
	m.SetHeader("To", res.Email())
	m.SetHeader("Subject", delivery.Title())
	m.SetBody("text/plain", delivery.Body())
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return dispatch.NewTransientError(fmt.Sprintf("failed to send email: %v", err), err)
	}
	return nil
}
