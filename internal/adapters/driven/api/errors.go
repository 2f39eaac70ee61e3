package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// errorBody is the error envelope of the API. detail is either a string
// or a list of field errors.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// responseError converts a non-2xx response into a remote error. fallback
// is used when the body carries no message.
func responseError(resp *http.Response, fallback string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	msg := detailMessage(body)
	if msg == "" {
		msg = fallback
	}
	if resp.StatusCode == http.StatusTooManyRequests && msg == fallback {
		msg = "Too many requests, try again shortly"
	}

	return &domain.RemoteError{
		Kind:       domain.KindForStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
}

// detailMessage extracts the human-readable message from an error body.
func detailMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}

	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			return s
		}
		var fields []fieldError
		if err := json.Unmarshal(eb.Detail, &fields); err == nil {
			msgs := make([]string, 0, len(fields))
			for _, f := range fields {
				msgs = append(msgs, fieldName(f.Loc)+f.Msg)
			}
			return strings.Join(msgs, "; ")
		}
	}
	return eb.Message
}

// fieldName renders the last location element as "name: ".
func fieldName(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s + ": "
	}
	return ""
}

// transportError converts a failure to get any response.
func transportError(err error, fallback string) error {
	if errors.Is(err, domain.ErrNotAuthenticated) {
		return &domain.RemoteError{Kind: domain.ErrorKindAuthentication, Message: "Not signed in", Err: err}
	}

	msg := "Network error: unable to reach the server"
	switch {
	case errors.Is(err, context.Canceled):
		msg = fallback + ": cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		msg = fallback + ": timed out"
	}
	return &domain.RemoteError{Kind: domain.ErrorKindNetwork, Message: msg, Err: err}
}

// decodeError reports a 2xx response that could not be decoded.
func decodeError(status int, err error) error {
	return &domain.RemoteError{
		Kind:       domain.ErrorKindUnknown,
		StatusCode: status,
		Message:    "Unexpected response from server",
		Err:        err,
	}
}
