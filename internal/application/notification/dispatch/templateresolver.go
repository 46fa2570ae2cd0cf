package dispatch

import (
	"context"

	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/shared/logger"
)

// TemplateResolver walks the layered template chain for a (type, channel,
// scope) and renders placeholder data into the first matching text. Subject
// and body resolve independently: a template that matches for body may lack a
// subject, in which case the subject continues down the chain.
type TemplateResolver struct {
	templates notification.TemplateRepository
	logger    logger.Interface
}

func NewTemplateResolver(templates notification.TemplateRepository, logger logger.Interface) *TemplateResolver {
	return &TemplateResolver{
		templates: templates,
		logger:    logger,
	}
}

// Resolve returns the rendered subject and body, either of which is nil when
// nothing in the chain matched. Callers fall back to the request's raw text.
//
// Chain, first match wins:
//  1. scope-specific, channel-specific
//  2. scope-specific, channel-agnostic
//  3. global, channel-specific
//  4. global, channel-agnostic
func (r *TemplateResolver) Resolve(
	ctx context.Context,
	messageType vo.MessageType,
	channel vo.Channel,
	scopeID *uint,
	data map[string]string,
) (subject *string, body *string) {
	type lookup struct {
		channel *vo.Channel
		scopeID *uint
	}

	var lookups []lookup
	if scopeID != nil {
		lookups = append(lookups,
			lookup{&channel, scopeID},
			lookup{nil, scopeID},
		)
	}
	lookups = append(lookups,
		lookup{&channel, nil},
		lookup{nil, nil},
	)

	for _, lk := range lookups {
		tmpl, err := r.templates.FindActive(ctx, messageType, lk.channel, lk.scopeID)
		if err != nil {
			r.logger.Warnw("template lookup failed",
				"type", messageType.String(),
				"channel", channel.String(),
				"error", err,
			)
			continue
		}
		if tmpl == nil {
			continue
		}

		if subject == nil {
			if rendered, ok := tmpl.RenderSubject(data); ok {
				subject = &rendered
			}
		}
		if body == nil {
			rendered := tmpl.RenderBody(data)
			body = &rendered
		}
		if subject != nil && body != nil {
			break
		}
	}

	return subject, body
}
