package usecases

import (
	"context"
	"fmt"

	"habitat/internal/application/notification/dispatch"
	"habitat/internal/application/notification/dto"
	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/domain/resident"
	"habitat/internal/shared/errors"
	"habitat/internal/shared/logger"
)

// SendUseCase fans one logical notification out to an explicit recipient
// list. Every recipient must exist; an unknown ID fails the whole request
// before any record is created.
type SendUseCase struct {
	residents resident.Repository
	fanout    *fanOut
	logger    logger.Interface
}

func NewSendUseCase(
	residents resident.Repository,
	deliveries notification.DeliveryRepository,
	gate *dispatch.PreferenceGate,
	resolver *dispatch.TemplateResolver,
	dispatcher *dispatch.Dispatcher,
	tx TransactionRunner,
	logger logger.Interface,
) *SendUseCase {
	return &SendUseCase{
		residents: residents,
		fanout: &fanOut{
			deliveries: deliveries,
			gate:       gate,
			resolver:   resolver,
			dispatcher: dispatcher,
			tx:         tx,
			logger:     logger,
		},
		logger: logger,
	}
}

func (uc *SendUseCase) Execute(ctx context.Context, req *dto.SendRequest) (*dto.SendReceipt, error) {
	messageType, err := vo.NewMessageType(req.MessageType)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	channels, err := parseChannels(req.Channels)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	recipientIDs := dedupIDs(req.RecipientIDs)
	if len(recipientIDs) == 0 {
		return nil, errors.NewValidationError("at least one recipient is required")
	}

	found, err := uc.residents.FindByIDs(ctx, recipientIDs)
	if err != nil {
		uc.logger.Errorw("failed to load recipients", "error", err)
		return nil, errors.NewInternalError("failed to load recipients")
	}
	if missing := missingIDs(recipientIDs, found); len(missing) > 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("recipient %d not found", missing[0]))
	}

	created, skipped, err := uc.fanout.run(ctx, fanOutInput{
		messageType: messageType,
		recipients:  recipientIDs,
		channels:    channels,
		title:       req.Title,
		body:        req.Body,
		data:        req.Data,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("notification fan-out complete",
		"type", messageType.String(),
		"recipients", len(recipientIDs),
		"created", created,
		"skipped", skipped,
	)
	return &dto.SendReceipt{Created: created, Skipped: skipped}, nil
}

// parseChannels validates the requested channels, defaulting to every
// channel when the request names none.
func parseChannels(names []string) ([]vo.Channel, error) {
	if len(names) == 0 {
		return vo.AllChannels(), nil
	}

	seen := make(map[vo.Channel]bool, len(names))
	channels := make([]vo.Channel, 0, len(names))
	for _, name := range names {
		channel, err := vo.NewChannel(name)
		if err != nil {
			return nil, err
		}
		if seen[channel] {
			continue
		}
		seen[channel] = true
		channels = append(channels, channel)
	}
	return channels, nil
}

func dedupIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func missingIDs(ids []uint, found []*resident.Resident) []uint {
	present := make(map[uint]bool, len(found))
	for _, r := range found {
		present[r.ID()] = true
	}
	var missing []uint
	for _, id := range ids {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
