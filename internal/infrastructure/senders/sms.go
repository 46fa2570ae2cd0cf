package senders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"habitat/internal/application/notification/dispatch"
	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/domain/resident"
	"habitat/internal/shared/config"
	"habitat/internal/shared/logger"
)

// SMSSender posts messages to an HTTP SMS provider. The title is dropped;
// SMS carries only the body.
type SMSSender struct {
	cfg       config.SMSConfig
	residents resident.Repository
	client    *http.Client
	logger    logger.Interface
}

func NewSMSSender(cfg config.SMSConfig, residents resident.Repository, logger logger.Interface) *SMSSender {
	return &SMSSender{
		cfg:       cfg,
		residents: residents,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
	}
}

func (s *SMSSender) Channel() vo.Channel {
	return vo.ChannelSMS
}

func (s *SMSSender) Send(ctx context.Context, delivery *notification.Delivery) error {
	if s.cfg.APIURL == "" || s.cfg.APIKey == "" {
		return dispatch.NewConfigurationError("SMS provider is not configured")
	}

	res, err := s.residents.FindByID(ctx, delivery.RecipientID())
	if err != nil {
		return dispatch.NewTransientError("failed to load recipient", err)
	}
	if res == nil || res.Phone() == "" {
		return dispatch.NewConfigurationError("recipient has no phone number")
	}

	payload, err := json.Marshal(map[string]string{
		"to":   res.Phone(),
		"from": s.cfg.Sender,
		"body": delivery.Body(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode SMS payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return dispatch.NewTransientError(fmt.Sprintf("SMS provider unreachable: %v", err), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return dispatch.NewConfigurationError(fmt.Sprintf("SMS provider rejected credentials: %d", resp.StatusCode))
	default:
		return dispatch.NewTransientError(fmt.Sprintf("SMS provider returned %d", resp.StatusCode), nil)
	}
}
