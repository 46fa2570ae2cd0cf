package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
)

func mustTemplate(t *testing.T, channel *vo.Channel, scopeID *uint, subject, body string) *notification.Template {
	t.Helper()
	tmpl, err := notification.NewTemplate(1, vo.MessageTypePaymentDue, channel, scopeID, subject, body)
	require.NoError(t, err)
	return tmpl
}

func TestTemplateResolver_NoMatch(t *testing.T) {
	resolver := NewTemplateResolver(&memoryTemplateRepo{}, testLogger())

	subject, body := resolver.Resolve(context.Background(), vo.MessageTypePaymentDue, vo.ChannelEmail, nil, nil)
	assert.Nil(t, subject)
	assert.Nil(t, body)
}

func TestTemplateResolver_GlobalChannelAgnosticFallback(t *testing.T) {
	repo := &memoryTemplateRepo{templates: []*notification.Template{
		mustTemplate(t, nil, nil, "Due", "Hello {{firstName}}"),
	}}
	resolver := NewTemplateResolver(repo, testLogger())

	subject, body := resolver.Resolve(context.Background(), vo.MessageTypePaymentDue, vo.ChannelEmail, nil,
		map[string]string{"firstName": "Alice"})

	require.NotNil(t, subject)
	require.NotNil(t, body)
	assert.Equal(t, "Due", *subject)
	assert.Equal(t, "Hello Alice", *body)
}

// The scope-specific channel-agnostic template outranks the global
// channel-specific one.
func TestTemplateResolver_ScopeBeatsGlobal(t *testing.T) {
	ch := vo.ChannelEmail
	scope := uint(7)
	repo := &memoryTemplateRepo{templates: []*notification.Template{
		mustTemplate(t, &ch, nil, "Global subject", "global body"),
		mustTemplate(t, nil, &scope, "Scope subject", "scope body"),
	}}
	resolver := NewTemplateResolver(repo, testLogger())

	subject, body := resolver.Resolve(context.Background(), vo.MessageTypePaymentDue, vo.ChannelEmail, &scope, nil)

	require.NotNil(t, subject)
	require.NotNil(t, body)
	assert.Equal(t, "Scope subject", *subject)
	assert.Equal(t, "scope body", *body)
}

func TestTemplateResolver_ChannelSpecificBeatsAgnosticWithinScope(t *testing.T) {
	ch := vo.ChannelEmail
	scope := uint(7)
	repo := &memoryTemplateRepo{templates: []*notification.Template{
		mustTemplate(t, nil, &scope, "Agnostic", "agnostic body"),
		mustTemplate(t, &ch, &scope, "Specific", "specific body"),
	}}
	resolver := NewTemplateResolver(repo, testLogger())

	subject, body := resolver.Resolve(context.Background(), vo.MessageTypePaymentDue, vo.ChannelEmail, &scope, nil)

	require.NotNil(t, subject)
	assert.Equal(t, "Specific", *subject)
	assert.Equal(t, "specific body", *body)
}

// A matched body template without a subject lets the subject resolve further
// down the chain.
func TestTemplateResolver_SubjectResolvesIndependently(t *testing.T) {
	ch := vo.ChannelSMS
	repo := &memoryTemplateRepo{templates: []*notification.Template{
		mustTemplate(t, &ch, nil, "", "sms body"),
		mustTemplate(t, nil, nil, "Fallback subject", "generic body"),
	}}
	resolver := NewTemplateResolver(repo, testLogger())

	subject, body := resolver.Resolve(context.Background(), vo.MessageTypePaymentDue, vo.ChannelSMS, nil, nil)

	require.NotNil(t, body)
	assert.Equal(t, "sms body", *body, "body comes from the first match")
	require.NotNil(t, subject)
	assert.Equal(t, "Fallback subject", *subject, "subject continues down the chain")
}

func TestTemplateResolver_InactiveTemplatesIgnored(t *testing.T) {
	tmpl := mustTemplate(t, nil, nil, "Subject", "body")
	tmpl.Deactivate()
	resolver := NewTemplateResolver(&memoryTemplateRepo{templates: []*notification.Template{tmpl}}, testLogger())

	subject, body := resolver.Resolve(context.Background(), vo.MessageTypePaymentDue, vo.ChannelEmail, nil, nil)
	assert.Nil(t, subject)
	assert.Nil(t, body)
}
