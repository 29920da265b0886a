package ai

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kokoro-dev/wellness-backend/internal/model"
)

var (
	focusPattern   = regexp.MustCompile(`\$(sleep|water|meditation)\$`)
	kindPattern    = regexp.MustCompile(`(?i)\b(sleep|water|meditation)\b`)
	ErrParseFailed = errors.New("parse_failed")
)

// ParseFocus extracts the focus metric from model output. It first tries
// the strict $<kind>$ envelope the prompt asks for, then falls back to the
// first metric word found anywhere in the text.
func ParseFocus(text string) (model.MetricKind, error) {
	kind, _, err := ParseFocusWithTip(text)
	return kind, err
}

// ParseFocusWithTip returns the focus metric plus the remaining text as the
// tip line, trimmed of the envelope and surrounding whitespace.
func ParseFocusWithTip(text string) (model.MetricKind, string, error) {
	// strict
	if m := focusPattern.FindStringSubmatchIndex(text); m != nil {
		kind, ok := model.ParseMetricKind(text[m[2]:m[3]])
		if !ok {
			return "", "", fmt.Errorf("%w: unknown kind %q", ErrParseFailed, text[m[2]:m[3]])
		}
		tip := strings.TrimSpace(text[:m[0]] + text[m[1]:])
		return kind, tip, nil
	}
	// fallback: first metric word, case-insensitive
	m := kindPattern.FindStringIndex(text)
	if m == nil {
		return "", "", fmt.Errorf("%w: no focus metric found", ErrParseFailed)
	}
	kind, ok := model.ParseMetricKind(strings.ToLower(text[m[0]:m[1]]))
	if !ok {
		return "", "", fmt.Errorf("%w: unknown kind %q", ErrParseFailed, text[m[0]:m[1]])
	}
	return kind, strings.TrimSpace(text), nil
}
