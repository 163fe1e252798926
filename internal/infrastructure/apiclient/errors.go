package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// maxMessageLen bounds every message taken from a body, in characters.
const maxMessageLen = 300

// APIError is a non-2xx answer from the backend. Message is what the user sees.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return e.Message
}

// newAPIError extracts the backend message from the body: the JSON "message"
// field (string or list), then "error", then the raw text, then the status text.
func newAPIError(method, path string, status int, body []byte) *APIError {
	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Message:    messageFromBody(status, body),
		Body:       body,
	}
}

func messageFromBody(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if gjson.Valid(trimmed) {
		parsed := gjson.Parse(trimmed)
		for _, key := range []string{"message", "error.message", "error"} {
			v := parsed.Get(key)
			switch {
			case v.IsArray():
				var parts []string
				for _, item := range v.Array() {
					if s := strings.TrimSpace(item.String()); s != "" {
						parts = append(parts, s)
					}
				}
				if len(parts) > 0 {
					return clip(strings.Join(parts, "; "))
				}
			case v.Type == gjson.String && v.String() != "":
				return clip(v.String())
			}
		}
	} else if trimmed != "" {
		return clip(trimmed)
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

// clip cuts s to maxMessageLen runes and drops invalid UTF-8
func clip(s string) string {
	s = strings.ToValidUTF8(s, "")
	if utf8.RuneCountInString(s) <= maxMessageLen {
		return s
	}
	return string([]rune(s)[:maxMessageLen]) + "…"
}

// TransportError means no response was received.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend unreachable (%s %s): %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports a 401 from the backend: the session token is no longer valid.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsNotFound reports a 404 from the backend.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsTransport reports that the backend could not be reached.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
