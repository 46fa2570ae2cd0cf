package valueobjects

import "fmt"

// Channel is a delivery medium.
type Channel string

const (
	ChannelInApp Channel = "in_app"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelChat  Channel = "chat"
	ChannelPush  Channel = "push"
)

var validChannels = map[Channel]bool{
	ChannelInApp: true,
	ChannelEmail: true,
	ChannelSMS:   true,
	ChannelChat:  true,
	ChannelPush:  true,
}

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	return validChannels[c]
}

// RequiresTransport reports whether delivery goes through an external sender.
// In-app records are visible as soon as they are persisted.
func (c Channel) RequiresTransport() bool {
	return c != ChannelInApp
}

func NewChannel(s string) (Channel, error) {
	c := Channel(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid channel: %s", s)
	}
	return c, nil
}

// AllChannels returns every supported channel, the default fan-out set.
func AllChannels() []Channel {
	return []Channel{ChannelInApp, ChannelEmail, ChannelSMS, ChannelChat, ChannelPush}
}
