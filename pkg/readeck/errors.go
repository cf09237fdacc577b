package readeck

import "fmt"

// APIError is the base error type for all failures reported by the client.
// StatusCode is zero for failures that never reached the server (transport
// errors, parse errors, client-side validation).
type APIError struct {
	Message      string
	StatusCode   int
	ResponseData map[string]any
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// AuthError reports a credential or permission failure (401 or 403).
type AuthError struct {
	APIError
}

// NotFoundError reports a missing resource (404).
type NotFoundError struct {
	APIError
}

// ValidationError reports a rejected request (400 or 422), or a client-side
// precondition failure raised before any network call.
type ValidationError struct {
	APIError
}

// ServerError reports a 5xx response.
type ServerError struct {
	APIError
}

// StatusCode returns the HTTP status carried by an error of the
// taxonomy, or zero for other errors and failures that never reached
// the server.
func StatusCode(err error) int {
	switch e := err.(type) {
	case *AuthError:
		return e.StatusCode
	case *NotFoundError:
		return e.StatusCode
	case *ValidationError:
		return e.StatusCode
	case *ServerError:
		return e.StatusCode
	case *APIError:
		return e.StatusCode
	}
	return 0
}

func newError(format string, args ...any) *APIError {
	return &APIError{Message: fmt.Sprintf(format, args...)}
}

func newStatusError(status int, format string, args ...any) *APIError {
	return &APIError{Message: fmt.Sprintf(format, args...), StatusCode: status}
}
