package dispatch

import (
	"context"
	"errors"
	"fmt"

	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
)

// ErrorKind classifies a sender failure so the dispatcher's retry decision is
// structural rather than string matching.
type ErrorKind int

const (
	// ErrorKindUnknown is any failure the sender did not classify.
	ErrorKindUnknown ErrorKind = iota
	// ErrorKindConfiguration is permanent: missing credentials, no address
	// for the recipient. Never retried.
	ErrorKindConfiguration
	// ErrorKindTransient is a transport fault worth retrying.
	ErrorKindTransient
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindConfiguration:
		return "configuration"
	case ErrorKindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// SendError is the typed failure returned by channel senders.
type SendError struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *SendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

func NewConfigurationError(reason string) *SendError {
	return &SendError{Kind: ErrorKindConfiguration, Reason: reason}
}

func NewTransientError(reason string, err error) *SendError {
	return &SendError{Kind: ErrorKindTransient, Reason: reason, Err: err}
}

// KindOf extracts the error kind, defaulting to unknown for untyped errors.
func KindOf(err error) ErrorKind {
	var sendErr *SendError
	if errors.As(err, &sendErr) {
		return sendErr.Kind
	}
	return ErrorKindUnknown
}

// ChannelSender delivers one record over one channel. Implementations resolve
// the recipient's channel address at send time, not at record creation.
// In-app is never routed through a sender.
type ChannelSender interface {
	Channel() vo.Channel
	Send(ctx context.Context, delivery *notification.Delivery) error
}

// SenderRegistry maps channels to their senders, resolved once at startup.
// A missing entry is a defined state, reported by Lookup's second return.
type SenderRegistry struct {
	senders map[vo.Channel]ChannelSender
}

func NewSenderRegistry(senders ...ChannelSender) *SenderRegistry {
	m := make(map[vo.Channel]ChannelSender, len(senders))
	for _, s := range senders {
		m[s.Channel()] = s
	}
	return &SenderRegistry{senders: m}
}

func (r *SenderRegistry) Lookup(channel vo.Channel) (ChannelSender, bool) {
	s, ok := r.senders[channel]
	return s, ok
}

// Channels lists the channels that have a sender registered.
func (r *SenderRegistry) Channels() []vo.Channel {
	out := make([]vo.Channel, 0, len(r.senders))
	for ch := range r.senders {
		out = append(out, ch)
	}
	return out
}
