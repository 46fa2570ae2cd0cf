package dispatch

import (
	"context"

	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/shared/logger"
)

// PreferenceGate decides whether a (recipient, channel, type) pair may be
// delivered. Read-only; the dispatch path never creates preference rows.
type PreferenceGate struct {
	preferences notification.PreferenceRepository
	logger      logger.Interface
}

func NewPreferenceGate(preferences notification.PreferenceRepository, logger logger.Interface) *PreferenceGate {
	return &PreferenceGate{
		preferences: preferences,
		logger:      logger,
	}
}

// IsEnabled applies the gate rules in order: in-app is always allowed,
// announcements are always allowed, otherwise the stored flag decides with
// absence meaning enabled. A lookup failure degrades to the default rather
// than blocking delivery.
func (g *PreferenceGate) IsEnabled(ctx context.Context, recipientID uint, channel vo.Channel, messageType vo.MessageType) bool {
	if channel == vo.ChannelInApp {
		return true
	}
	if messageType.IsAnnouncement() {
		return true
	}

	pref, err := g.preferences.Find(ctx, recipientID, channel, messageType)
	if err != nil {
		g.logger.Warnw("preference lookup failed, defaulting to enabled",
			"recipient_id", recipientID,
			"channel", channel.String(),
			"type", messageType.String(),
			"error", err,
		)
		return true
	}
	if pref == nil {
		return true
	}
	return pref.Enabled()
}
