package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotAuthenticated", ErrNotAuthenticated},
		{"ErrTokenExpired", ErrTokenExpired},
		{"ErrAuthentication", ErrAuthentication},
		{"ErrValidation", ErrValidation},
		{"ErrNetwork", ErrNetwork},
		{"ErrUnknown", ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		code int
		want ErrorKind
	}{
		{400, ErrorKindValidation},
		{401, ErrorKindAuthentication},
		{403, ErrorKindValidation},
		{404, ErrorKindNotFound},
		{409, ErrorKindValidation},
		{422, ErrorKindValidation},
		{429, ErrorKindUnknown},
		{500, ErrorKindUnknown},
		{502, ErrorKindUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, KindForStatus(tt.code))
		})
	}
}

func TestRemoteError_Is(t *testing.T) {
	err := &RemoteError{Kind: ErrorKindNotFound, StatusCode: 404, Message: "Document not found"}

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrAuthentication))

	wrapped := fmt.Errorf("get document: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, ErrorKindNotFound, KindOf(wrapped))
}

func TestRemoteError_Error(t *testing.T) {
	assert.Equal(t, "Document not found (404)",
		(&RemoteError{Kind: ErrorKindNotFound, StatusCode: 404, Message: "Document not found"}).Error())
	assert.Equal(t, "connection refused",
		(&RemoteError{Kind: ErrorKindNetwork, Message: "connection refused"}).Error())
}

func TestRemoteError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := &RemoteError{Kind: ErrorKindNetwork, Message: "Network error", Err: cause}

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestKindOf_Sentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"not authenticated", ErrNotAuthenticated, ErrorKindAuthentication},
		{"token expired", fmt.Errorf("refresh: %w", ErrTokenExpired), ErrorKindAuthentication},
		{"not found", ErrNotFound, ErrorKindNotFound},
		{"invalid input", ErrInvalidInput, ErrorKindValidation},
		{"plain", errors.New("boom"), ErrorKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsAuthentication(t *testing.T) {
	assert.False(t, IsAuthentication(nil))
	assert.True(t, IsAuthentication(&RemoteError{Kind: ErrorKindAuthentication, StatusCode: 401}))
	assert.True(t, IsAuthentication(ErrTokenExpired))
	assert.False(t, IsAuthentication(&RemoteError{Kind: ErrorKindValidation, StatusCode: 403}))
}
