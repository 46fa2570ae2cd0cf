package senders

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v4"

	"habitat/internal/application/notification/dispatch"
	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/domain/resident"
	"habitat/internal/shared/config"
	"habitat/internal/shared/logger"
)

// ChatSender delivers notifications to a resident's linked Telegram chat.
type ChatSender struct {
	bot       *tele.Bot
	residents resident.Repository
	logger    logger.Interface
}

// NewChatSender builds the sender, returning a non-nil sender even when the
// token is missing so the configuration error surfaces on the delivery
// record instead of at startup.
func NewChatSender(cfg config.ChatConfig, residents resident.Repository, logger logger.Interface) *ChatSender {
	var bot *tele.Bot
	if cfg.TelegramToken != "" {
		b, err := tele.NewBot(tele.Settings{
			Token:   cfg.TelegramToken,
			Offline: false,
		})
		if err != nil {
			logger.Errorw("failed to initialize telegram bot", "error", err)
		} else {
			bot = b
		}
	}

	return &ChatSender{bot: bot, residents: residents, logger: logger}
}

func (s *ChatSender) Channel() vo.Channel {
	return vo.ChannelChat
}

func (s *ChatSender) Send(ctx context.Context, delivery *notification.Delivery) error {
	if s.bot == nil {
		return dispatch.NewConfigurationError("telegram bot is not configured")
	}

	res, err := s.residents.FindByID(ctx, delivery.RecipientID())
	if err != nil {
		return dispatch.NewTransientError("failed to load recipient", err)
	}
	if res == nil || res.ChatID() == 0 {
		return dispatch.NewConfigurationError("recipient has no linked chat")
	}

	text := delivery.Title() + "\n\n" + delivery.Body()
	if _, err := s.bot.Send(tele.ChatID(res.ChatID()), text); err != nil {
		return dispatch.NewTransientError(fmt.Sprintf("failed to send chat message: %v", err), err)
	}
	return nil
}
