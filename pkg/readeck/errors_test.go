package readeck

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "with status",
			err:  &APIError{Message: "Server error: boom", StatusCode: 500},
			want: "[500] Server error: boom",
		},
		{
			name: "without status",
			err:  &APIError{Message: "Request timeout: deadline exceeded"},
			want: "Request timeout: deadline exceeded",
		},
		{
			name: "auth error",
			err:  &AuthError{APIError{Message: "Authentication failed. Please check your token.", StatusCode: 401}},
			want: "[401] Authentication failed. Please check your token.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	var err error = &NotFoundError{APIError{Message: "Resource not found.", StatusCode: 404}}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Error("NotFoundError must match its own kind")
	}
	var auth *AuthError
	if errors.As(err, &auth) {
		t.Error("NotFoundError must not match AuthError")
	}
}

func TestErrorWrapping(t *testing.T) {
	inner := &ServerError{APIError{Message: "Server error: boom", StatusCode: 503}}
	wrapped := fmt.Errorf("fetching bookmarks: %w", inner)

	var srv *ServerError
	if !errors.As(wrapped, &srv) {
		t.Fatal("Wrapped taxonomy errors must stay matchable")
	}
	if srv.StatusCode != 503 {
		t.Errorf("Expected status 503, got %d", srv.StatusCode)
	}
}

func TestStatusCodeHelper(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&AuthError{APIError{StatusCode: 401}}, 401},
		{&NotFoundError{APIError{StatusCode: 404}}, 404},
		{&ValidationError{APIError{StatusCode: 422}}, 422},
		{&ServerError{APIError{StatusCode: 500}}, 500},
		{&APIError{StatusCode: 418}, 418},
		{&APIError{}, 0},
		{errors.New("unrelated"), 0},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
