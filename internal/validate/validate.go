// Package validate format-checks user-supplied channel values before
// they reach the generator or any persisted state.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/foxytanuki/ccnotify/internal/errs"
)

// MaxInputLength is the hard cap applied during sanitization.
const MaxInputLength = 2048

var (
	// webhookPattern matches a Discord webhook URL exactly: no extra path
	// segments, no query string, no fragment. Both official webhook hosts
	// are accepted.
	webhookPattern = regexp.MustCompile(`^https://(?:discord\.com|discordapp\.com)/api/webhooks/[0-9]+/[A-Za-z0-9_-]+$`)

	// topicPattern matches an ntfy topic: 1-64 chars of [A-Za-z0-9_-].
	// Leading/trailing separators are rejected separately for clearer errors.
	topicPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// Sanitize removes ASCII control characters (preserving newline,
// carriage return, and tab), trims surrounding whitespace, and
// truncates to MaxInputLength characters.
func Sanitize(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, r := range raw {
		if r == '\n' || r == '\r' || r == '\t' {
			sb.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7F {
			continue
		}
		sb.WriteRune(r)
	}
	s := strings.TrimSpace(sb.String())
	if utf8.RuneCountInString(s) > MaxInputLength {
		runes := []rune(s)
		s = string(runes[:MaxInputLength])
	}
	return s
}

// WebhookURL sanitizes and validates a Discord webhook URL.
// Returns the sanitized URL or an InvalidInput error.
func WebhookURL(raw string) (string, error) {
	s := Sanitize(raw)
	if s == "" {
		return "", errs.New(errs.KindInvalidInput, "validate webhook url", "webhook URL is empty").
			WithSuggestion("copy the webhook URL from your Discord channel settings")
	}
	if !webhookPattern.MatchString(s) {
		return "", errs.New(errs.KindInvalidInput, "validate webhook url",
			fmt.Sprintf("%q is not a valid Discord webhook URL", s)).
			WithSuggestion("expected https://discord.com/api/webhooks/<id>/<token>")
	}
	return s, nil
}

// TopicName sanitizes and validates an ntfy topic name.
// Returns the sanitized topic or an InvalidInput error.
func TopicName(raw string) (string, error) {
	s := Sanitize(raw)
	if !topicPattern.MatchString(s) {
		return "", errs.New(errs.KindInvalidInput, "validate topic name",
			fmt.Sprintf("%q is not a valid topic name", s)).
			WithSuggestion("use 1-64 characters of letters, digits, '-' or '_'")
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "_") ||
		strings.HasSuffix(s, "-") || strings.HasSuffix(s, "_") {
		return "", errs.New(errs.KindInvalidInput, "validate topic name",
			fmt.Sprintf("topic name %q must not start or end with '-' or '_'", s))
	}
	return s, nil
}
