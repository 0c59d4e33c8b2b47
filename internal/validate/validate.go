// Package validate checks untrusted input before it reaches the frame store or
// the client script templater. All functions are pure.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxFrameSize is the default upper bound on a frame payload, in characters.
const DefaultMaxFrameSize = 1_000_000

// MaxBackendURLLength bounds the endpoint injected into the client script.
const MaxBackendURLLength = 100

var (
	ErrInvalidEnum     = errors.New("invalid enum value")
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidCharset  = errors.New("invalid charset")
	ErrPayloadTooLarge = errors.New("payload too large")
)

// monitorSides is the canonical order used in error messages.
var monitorSides = []string{"top", "bottom", "left", "right", "front", "back"}

// AllowedMonitorSides returns the monitor sides accepted by MonitorSide.
func AllowedMonitorSides() []string {
	out := make([]string, len(monitorSides))
	copy(out, monitorSides)
	return out
}

// EnumError reports a value outside a fixed allowed set.
type EnumError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("%s %q must be one of: %s", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *EnumError) Unwrap() error { return ErrInvalidEnum }

// URLRule names the backend URL rule that was violated.
type URLRule string

const (
	URLRuleScheme  URLRule = "scheme"
	URLRuleCharset URLRule = "charset"
	URLRuleLength  URLRule = "length"
)

// URLError reports which backend URL rule failed.
type URLError struct {
	Rule   URLRule
	Detail string
}

func (e *URLError) Error() string {
	return "backend url " + string(e.Rule) + ": " + e.Detail
}

func (e *URLError) Unwrap() error { return ErrInvalidURL }

// MonitorSide accepts exactly one of top, bottom, left, right, front, back.
func MonitorSide(side string) error {
	for _, allowed := range monitorSides {
		if side == allowed {
			return nil
		}
	}
	return &EnumError{Field: "monitor side", Value: side, Allowed: AllowedMonitorSides()}
}

// urlForbidden are the characters that could end a double-quoted Lua string
// literal or start a new statement.
const urlForbidden = "\"\n\r"

// BackendURL accepts http(s) URLs of at most MaxBackendURLLength characters
// (runes, not bytes) that contain no quote or line break.
func BackendURL(url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return &URLError{Rule: URLRuleScheme, Detail: "must start with http:// or https://"}
	}
	if i := strings.IndexAny(url, urlForbidden); i >= 0 {
		return &URLError{Rule: URLRuleCharset, Detail: fmt.Sprintf("forbidden character %q at offset %d", url[i], i)}
	}
	if n := utf8.RuneCountInString(url); n > MaxBackendURLLength {
		return &URLError{Rule: URLRuleLength, Detail: fmt.Sprintf("length %d characters exceeds %d", n, MaxBackendURLLength)}
	}
	return nil
}

// FramePayload accepts payloads of at most max characters made only of ASCII
// hex digits. The size check runs first so oversized payloads are never scanned.
func FramePayload(payload string, max int) error {
	if len(payload) > max {
		return fmt.Errorf("%w: %d characters exceeds limit of %d", ErrPayloadTooLarge, len(payload), max)
	}
	for i := 0; i < len(payload); i++ {
		if !IsHexDigit(payload[i]) {
			return fmt.Errorf("%w: byte %q at offset %d is not a hex digit", ErrInvalidCharset, payload[i], i)
		}
	}
	return nil
}

// IsHexDigit reports whether b is 0-9, a-f or A-F.
func IsHexDigit(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'f':
		return true
	case b >= 'A' && b <= 'F':
		return true
	}
	return false
}
