package groq

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMissingKey indicates the client was constructed without a credential.
var ErrMissingKey = errors.New("groq api key is not configured")

// AuthError is returned for 401/403 responses; the key is bad or revoked.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("groq authentication failed (status %d); check GROQ_API_KEY", e.Status)
}

// APIError is any other non-2xx response, carrying a body excerpt for logs.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("groq api error (status %d)", e.Status)
	}
	return fmt.Sprintf("groq api error (status %d): %s", e.Status, e.Body)
}

// IsAuthError reports whether err is a credential failure.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// statusError maps a non-2xx response to the client error taxonomy.
func statusError(status int, body []byte) error {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return &AuthError{Status: status}
	}
	return &APIError{Status: status, Body: bodyExcerpt(body)}
}

// bodyExcerpt trims response bodies so errors stay readable in notifications.
func bodyExcerpt(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
