package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	data := map[string]string{"firstName": "Alice", "amount": "200"}

	tests := []struct {
		name string
		text string
		data map[string]string
		want string
	}{
		{"all keys present", "Hello {{firstName}}, {{amount}} due", data, "Hello Alice, 200 due"},
		{"missing key left verbatim", "Hello {{firstName}}, {{amount}} due", map[string]string{"firstName": "Alice"}, "Hello Alice, {{amount}} due"},
		{"no placeholders", "plain text", data, "plain text"},
		{"empty text", "", data, ""},
		{"nil data", "Hello {{firstName}}", nil, "Hello {{firstName}}"},
		{"repeated key", "{{amount}} + {{amount}}", data, "200 + 200"},
		{"malformed braces ignored", "{firstName} {{first-Name}}", data, "{firstName} {{first-Name}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.text, tt.data))
		})
	}
}

func TestSubstitute_Idempotent(t *testing.T) {
	data := map[string]string{"firstName": "Alice"}
	once := Substitute("Hello {{firstName}}, {{amount}} due", data)
	twice := Substitute(once, data)
	assert.Equal(t, once, twice)
}
