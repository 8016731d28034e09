package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrEmailTaken         = errors.New("Email taken")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

// OfflineError means the backend could not produce a usable answer: the
// transport failed, the server errored, or the body was not valid JSON.
// The client answers these from the mock responder instead of surfacing them.
type OfflineError struct {
	Path   string
	Status int
	Err    error
}

func (e *OfflineError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend unavailable at %s: status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("backend unavailable at %s: %v", e.Path, e.Err)
}

func (e *OfflineError) Unwrap() error {
	return e.Err
}

// BusinessError is a 4xx answer the backend gave on purpose. Message is the
// raw response text and may be empty.
type BusinessError struct {
	Status  int
	Message string
}

func (e *BusinessError) Error() string {
	if e.Message == "" {
		return strings.ToLower(http.StatusText(e.Status))
	}
	return e.Message
}

func IsOffline(err error) bool {
	var oe *OfflineError
	return errors.As(err, &oe)
}

// classify turns a 4xx response into the error callers see. A bare 401 only
// means bad credentials on the auth endpoints; elsewhere it is an ordinary
// business error such as an expired token.
func classify(path string, status int, body string) error {
	text := strings.TrimSpace(body)
	switch {
	case strings.Contains(text, ErrEmailTaken.Error()):
		return ErrEmailTaken
	case strings.Contains(text, ErrInvalidCredentials.Error()):
		return ErrInvalidCredentials
	case status == http.StatusUnauthorized && strings.HasPrefix(path, "/auth/"):
		return ErrInvalidCredentials
	}
	return &BusinessError{Status: status, Message: text}
}
