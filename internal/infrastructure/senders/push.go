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

// PushSender forwards notifications to a mobile push gateway keyed by the
// resident's device token.
type PushSender struct {
	cfg       config.PushConfig
	residents resident.Repository
	client    *http.Client
	logger    logger.Interface
}

func NewPushSender(cfg config.PushConfig, residents resident.Repository, logger logger.Interface) *PushSender {
	return &PushSender{
		cfg:       cfg,
		residents: residents,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
	}
}

func (s *PushSender) Channel() vo.Channel {
	return vo.ChannelPush
}

func (s *PushSender) Send(ctx context.Context, delivery *notification.Delivery) error {
	if s.cfg.GatewayURL == "" {
		return dispatch.NewConfigurationError("push gateway is not configured")
	}

	res, err := s.residents.FindByID(ctx, delivery.RecipientID())
	if err != nil {
		return dispatch.NewTransientError("failed to load recipient", err)
	}
	if res == nil || res.PushToken() == "" {
		return dispatch.NewConfigurationError("recipient has no push token")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"token": res.PushToken(),
		"title": delivery.Title(),
		"body":  delivery.Body(),
		"data":  delivery.Data(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return dispatch.NewTransientError(fmt.Sprintf("push gateway unreachable: %v", err), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return dispatch.NewConfigurationError(fmt.Sprintf("push gateway rejected credentials: %d", resp.StatusCode))
	default:
		return dispatch.NewTransientError(fmt.Sprintf("push gateway returned %d", resp.StatusCode), nil)
	}
}
