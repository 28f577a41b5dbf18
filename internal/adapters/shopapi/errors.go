package shopapi

import (
	"encoding/json"
	"errors"
	"strings"

	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
)

// errorBody is the API's error envelope. Handlers use "error"; a few use "message".
type errorBody struct {
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

// detailsError carries the raw "details" payload as the AppError cause.
type detailsError struct {
	raw string
}

func (e *detailsError) Error() string { return "details: " + e.raw }

func decodeError(status int, payload []byte) *apperrors.AppError {
	var body errorBody
	if len(payload) > 0 && json.Unmarshal(payload, &body) == nil {
		msg := strings.TrimSpace(body.Error)
		if msg == "" {
			msg = strings.TrimSpace(body.Message)
		}
		appErr := apperrors.FromStatus(status, msg)
		if d := strings.TrimSpace(string(body.Details)); d != "" && d != "null" {
			appErr.Cause = &detailsError{raw: d}
		}
		return appErr
	}
	return apperrors.FromStatus(status, "")
}

// ErrorDetails returns the raw JSON "details" from an API error, if any.
func ErrorDetails(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return ""
	}
	if d, ok := appErr.Cause.(*detailsError); ok {
		return d.raw
	}
	return ""
}
