package core

import (
	"fmt"
	"regexp"
	"strings"
)

var validatorErrorPattern = regexp.MustCompile(
	`^Key: '(?:[^'.]*\.)*([^'.]+)' Error:Field validation for '([^']+)' failed on the '([^']+)' tag$`)

var validatorTagMessages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"min":      "%s is too short",
	"max":      "%s is too long",
}

// FormatBackendError rewrites validator failures returned by the backend into
// readable sentences, one per line. If any line has an unknown shape or tag,
// the original message is returned unchanged.
func FormatBackendError(message string) string {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return message
	}

	var sentences []string
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		match := validatorErrorPattern.FindStringSubmatch(line)
		if match == nil {
			return message
		}
		format, ok := validatorTagMessages[match[3]]
		if !ok {
			return message
		}
		sentences = append(sentences, fmt.Sprintf(format, match[2]))
	}
	return strings.Join(sentences, "\n")
}
