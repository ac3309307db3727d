package validate

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain string", "hello", "hello"},
		{"trims whitespace", "  hello  ", "hello"},
		{"strips control chars", "he\x00ll\x1fo", "hello"},
		{"strips DEL", "hello\x7f", "hello"},
		{"preserves newline", "a\nb", "a\nb"},
		{"preserves tab", "a\tb", "a\tb"},
		{"preserves carriage return", "a\r\nb", "a\r\nb"},
		{"strips vertical tab and form feed", "a\x0b\x0cb", "ab"},
		{"empty string", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeTruncates(t *testing.T) {
	long := strings.Repeat("a", MaxInputLength+100)
	got := Sanitize(long)
	if len(got) != MaxInputLength {
		t.Errorf("Sanitize truncated to %d chars, want %d", len(got), MaxInputLength)
	}
}

func TestSanitizeTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", MaxInputLength+100)
	got := Sanitize(long)
	if n := utf8.RuneCountInString(got); n != MaxInputLength {
		t.Errorf("Sanitize truncated to %d runes, want %d", n, MaxInputLength)
	}
	if !utf8.ValidString(got) {
		t.Error("Sanitize produced invalid UTF-8")
	}
}

func TestWebhookURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid discord.com", "https://discord.com/api/webhooks/123456789/abcDEF123", false},
		{"valid discordapp.com", "https://discordapp.com/api/webhooks/123456789/abcDEF123", false},
		{"valid with surrounding whitespace", "  https://discord.com/api/webhooks/123456789/abcDEF123  ", false},
		{"token with underscore and dash", "https://discord.com/api/webhooks/42/a_b-C", false},
		{"http scheme rejected", "http://discord.com/api/webhooks/123456789/abcDEF123", true},
		{"extra path segment rejected", "https://discord.com/api/webhooks/123456789/abcDEF123/extra", true},
		{"query string rejected", "https://discord.com/api/webhooks/123456789/abcDEF123?wait=true", true},
		{"fragment rejected", "https://discord.com/api/webhooks/123456789/abcDEF123#top", true},
		{"wrong host rejected", "https://example.com/api/webhooks/123456789/abcDEF123", true},
		{"missing token rejected", "https://discord.com/api/webhooks/123456789/", true},
		{"non-numeric id rejected", "https://discord.com/api/webhooks/abc/token", true},
		{"empty rejected", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WebhookURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("WebhookURL(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Errorf("WebhookURL(%q) error = %v", tt.input, err)
			}
			if got != strings.TrimSpace(tt.input) {
				t.Errorf("WebhookURL(%q) = %q, want trimmed input", tt.input, got)
			}
		})
	}
}

func TestTopicName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single char accepted", "a", false},
		{"empty rejected", "", true},
		{"64 chars accepted", strings.Repeat("a", 64), false},
		{"65 chars rejected", strings.Repeat("a", 65), true},
		{"interior dash and underscore accepted", "my-topic_1", false},
		{"leading dash rejected", "-abc", true},
		{"trailing dash rejected", "abc-", true},
		{"leading underscore rejected", "_abc", true},
		{"trailing underscore rejected", "abc_", true},
		{"space rejected", "ab c", true},
		{"dot rejected", "ab.c", true},
		{"slash rejected", "ab/c", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TopicName(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("TopicName(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Errorf("TopicName(%q) error = %v", tt.input, err)
			}
			if got != tt.input {
				t.Errorf("TopicName(%q) = %q", tt.input, got)
			}
		})
	}
}
