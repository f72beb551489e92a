package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNoSession means no usable session exists; the caller is sent to the login page.
	ErrNoSession = errors.New("no active session")
	// ErrSessionExpired means the API rejected the token; the session has been cleared.
	ErrSessionExpired = errors.New("session expired")
	// ErrRoleDenied means the session role may not open the requested page.
	ErrRoleDenied = errors.New("role not permitted")

	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnknownRole         = errors.New("unknown role")
	ErrUpstreamUnavailable = errors.New("job board api unavailable")
	ErrSubmitInProgress    = errors.New("submission already in progress")
	ErrDeleteNotConfirmed  = errors.New("delete not confirmed")
)

// RequiresLogin reports whether err should send the caller back to the login page.
func RequiresLogin(err error) bool {
	return errors.Is(err, ErrNoSession) || errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrRoleDenied)
}

// Form field identifiers shared by validation and API error payloads.
const (
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldRole            = "role"
)

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

// Add records msg for field unless the field already has a message.
func (fe FieldErrors) Add(field, msg string) {
	if msg == "" {
		return
	}
	if _, ok := fe[field]; ok {
		return
	}
	fe[field] = msg
}

// Get returns the message for field, or "".
func (fe FieldErrors) Get(field string) string {
	return fe[field]
}

// Empty reports whether no field failed.
func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// Error lists the failing fields in a stable order.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msg := "validation failed:"
	for _, k := range keys {
		msg += fmt.Sprintf(" %s=%q", k, fe[k])
	}
	return msg
}

// APIError is a non-2xx answer from the job-board API.
type APIError struct {
	Status  int
	Message string
	Fields  FieldErrors
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api status %d", e.Status)
}

// ParseAPIError interprets an error body from the API. JSON objects are read
// for per-field messages and a general "message" or "error" entry; any other
// body becomes the general message verbatim.
func ParseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Fields: FieldErrors{}}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		var text string
		if json.Unmarshal(body, &text) != nil {
			text = string(body)
		}
		apiErr.Message = strings.TrimSpace(text)
		return apiErr
	}

	for _, field := range []string{FieldFullName, FieldEmail, FieldPassword, FieldConfirmPassword, FieldRole} {
		if msg, ok := payload[field].(string); ok {
			apiErr.Fields.Add(field, msg)
		}
	}
	for _, key := range []string{"message", "error"} {
		if msg, ok := payload[key].(string); ok && msg != "" {
			apiErr.Message = msg
			break
		}
	}
	return apiErr
}
