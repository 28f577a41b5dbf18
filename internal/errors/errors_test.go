package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "resource not found",
			},
			want: "resource not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to process",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to process: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestUnauthenticated(t *testing.T) {
	err := Unauthenticated("session expired")
	if err.Code != ErrCodeUnauthenticated {
		t.Errorf("Unauthenticated().Code = %v, want %v", err.Code, ErrCodeUnauthenticated)
	}
	if err.Status != http.StatusUnauthorized {
		t.Errorf("Unauthenticated().Status = %v, want %v", err.Status, http.StatusUnauthorized)
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "Email is required")
	if err.Code != ErrCodeValidation {
		t.Errorf("ValidationField().Code = %v, want %v", err.Code, ErrCodeValidation)
	}
	if err.Field != "email" {
		t.Errorf("ValidationField().Field = %v, want %v", err.Field, "email")
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCode
	}{
		{http.StatusUnauthorized, ErrCodeUnauthenticated},
		{http.StatusForbidden, ErrCodeForbidden},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusConflict, ErrCodeConflict},
		{http.StatusBadRequest, ErrCodeValidation},
		{http.StatusUnprocessableEntity, ErrCodeValidation},
		{http.StatusGatewayTimeout, ErrCodeTimeout},
		{http.StatusInternalServerError, ErrCodeInternal},
		{http.StatusBadGateway, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			if got := CodeForStatus(tt.status); got != tt.want {
				t.Errorf("CodeForStatus(%d) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestFromStatus_FallsBackToStatusText(t *testing.T) {
	err := FromStatus(http.StatusBadRequest, "")
	if err.Message != "Bad Request" {
		t.Errorf("FromStatus().Message = %q, want %q", err.Message, "Bad Request")
	}
	if GetStatus(err) != http.StatusBadRequest {
		t.Errorf("GetStatus() = %d, want %d", GetStatus(err), http.StatusBadRequest)
	}
}

func TestWrap_NilError(t *testing.T) {
	err := Wrap(nil, ErrCodeInternal, "wrapped error")
	if err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("boom")
	err := Wrapf(cause, ErrCodeInternal, "load %s", "overview")
	if err.Message != "load overview" {
		t.Errorf("Wrapf().Message = %q, want %q", err.Message, "load overview")
	}
	if !errors.Is(err, cause) {
		t.Errorf("Wrapf() should wrap cause")
	}
}

func TestIsUnauthenticated(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unauthenticated error",
			err:  Unauthenticated("expired"),
			want: true,
		},
		{
			name: "wrapped unauthenticated error",
			err:  fmt.Errorf("load overview: %w", FromStatus(http.StatusUnauthorized, "")),
			want: true,
		},
		{
			name: "other error",
			err:  FromStatus(http.StatusBadRequest, "bad"),
			want: false,
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnauthenticated(tt.err); got != tt.want {
				t.Errorf("IsUnauthenticated() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(FromStatus(http.StatusBadRequest, "Invalid credentials"), "Login failed"); got != "Invalid credentials" {
		t.Errorf("UserMessage() = %q, want %q", got, "Invalid credentials")
	}
	if got := UserMessage(errors.New("dial tcp"), "Login failed"); got != "Login failed" {
		t.Errorf("UserMessage() = %q, want %q", got, "Login failed")
	}
	if got := UserMessage(&AppError{Code: ErrCodeInternal}, "Login failed"); got != "Login failed" {
		t.Errorf("UserMessage() = %q, want %q", got, "Login failed")
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestMapTransportError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{
			name:     "deadline exceeded",
			err:      context.DeadlineExceeded,
			wantCode: ErrCodeTimeout,
		},
		{
			name:     "canceled",
			err:      context.Canceled,
			wantCode: ErrCodeCanceled,
		},
		{
			name:     "net timeout",
			err:      fmt.Errorf("get overview: %w", timeoutErr{}),
			wantCode: ErrCodeTimeout,
		},
		{
			name:     "connection refused",
			err:      errors.New("dial tcp 127.0.0.1:3001: connect: connection refused"),
			wantCode: ErrCodeUnavailable,
		},
		{
			name:     "app error passes through",
			err:      FromStatus(http.StatusBadRequest, "bad"),
			wantCode: ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapTransportError(tt.err)
			if !IsAppError(err, tt.wantCode) {
				t.Errorf("MapTransportError() code = %v, want %v", GetCode(err), tt.wantCode)
			}
		})
	}

	if MapTransportError(nil) != nil {
		t.Errorf("MapTransportError(nil) should be nil")
	}
}

func TestIsTransport(t *testing.T) {
	if !IsTransport(MapTransportError(context.DeadlineExceeded)) {
		t.Errorf("deadline should be a transport error")
	}
	if IsTransport(FromStatus(http.StatusGatewayTimeout, "")) {
		t.Errorf("a 504 response is not a transport error")
	}
	if IsTransport(FromStatus(http.StatusBadRequest, "bad")) {
		t.Errorf("validation is not a transport error")
	}
}

func TestServerMessage(t *testing.T) {
	if got := ServerMessage(FromStatus(http.StatusBadRequest, "Invalid credentials")); got != "Invalid credentials" {
		t.Errorf("ServerMessage() = %q, want %q", got, "Invalid credentials")
	}
	if got := ServerMessage(FromStatus(http.StatusBadRequest, "")); got != "" {
		t.Errorf("ServerMessage() = %q, want empty for status text fallback", got)
	}
	if got := ServerMessage(MapTransportError(context.DeadlineExceeded)); got != "" {
		t.Errorf("ServerMessage() = %q, want empty for transport errors", got)
	}
	if got := ServerMessage(errors.New("plain")); got != "" {
		t.Errorf("ServerMessage() = %q, want empty for plain errors", got)
	}
}
