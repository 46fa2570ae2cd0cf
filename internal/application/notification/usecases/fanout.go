package usecases

import (
	"context"

	"habitat/internal/application/notification/dispatch"
	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/shared/errors"
	"habitat/internal/shared/logger"
	"habitat/internal/shared/tenant"
)

// TransactionRunner abstracts the database transaction boundary so fan-out
// creation is atomic without the use cases depending on gorm directly.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// fanOut expands one logical notification into per-(recipient, channel)
// delivery records and hands them to the dispatcher. Shared by the direct
// and scope-targeted send use cases.
type fanOut struct {
	deliveries notification.DeliveryRepository
	gate       *dispatch.PreferenceGate
	resolver   *dispatch.TemplateResolver
	dispatcher *dispatch.Dispatcher
	tx         TransactionRunner
	logger     logger.Interface
}

type fanOutInput struct {
	messageType vo.MessageType
	recipients  []uint
	channels    []vo.Channel
	scopeID     *uint
	title       string
	body        string
	data        map[string]string
}

// run builds every eligible delivery first, persists them in one
// transaction, then submits them for async dispatch. Nothing is submitted
// if any record fails validation or persistence.
func (f *fanOut) run(ctx context.Context, in fanOutInput) (created, skipped int, err error) {
	tenantID, _ := tenant.FromContext(ctx)

	var pending []*notification.Delivery
	for _, recipientID := range in.recipients {
		for _, channel := range in.channels {
			if !f.gate.IsEnabled(ctx, recipientID, channel, in.messageType) {
				skipped++
				continue
			}

			title, body := f.resolveContent(ctx, channel, in)

			delivery, buildErr := notification.NewDelivery(
				tenantID, recipientID, channel, in.messageType, title, body, in.data,
			)
			if buildErr != nil {
				return 0, 0, errors.NewValidationError(buildErr.Error())
			}
			pending = append(pending, delivery)
		}
	}

	if len(pending) == 0 {
		return 0, skipped, nil
	}

	err = f.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, d := range pending {
			if createErr := f.deliveries.Create(txCtx, d); createErr != nil {
				return createErr
			}
		}
		return nil
	})
	if err != nil {
		f.logger.Errorw("failed to persist deliveries", "error", err, "count", len(pending))
		return 0, 0, errors.NewInternalError("failed to create deliveries")
	}

	for _, d := range pending {
		if submitErr := f.dispatcher.Submit(ctx, d); submitErr != nil {
			f.logger.Errorw("failed to submit delivery", "error", submitErr, "delivery_id", d.ID())
		}
	}

	return len(pending), skipped, nil
}

// resolveContent picks template text when one matches, falling back to the
// request's raw title and body. A final substitution pass covers raw text
// and any placeholders a template left behind.
func (f *fanOut) resolveContent(ctx context.Context, channel vo.Channel, in fanOutInput) (string, string) {
	title, body := in.title, in.body

	subject, tmplBody := f.resolver.Resolve(ctx, in.messageType, channel, in.scopeID, in.data)
	if subject != nil {
		title = *subject
	}
	if tmplBody != nil {
		body = *tmplBody
	}

	return notification.Substitute(title, in.data), notification.Substitute(body, in.data)
}
