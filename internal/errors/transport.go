package errors

import (
	"context"
	"errors"
	"net"
)

// MapTransportError maps failures that happen before an API response is received
// to AppError instances:
// - context.DeadlineExceeded and client timeouts → Timeout
// - context.Canceled → Canceled
// - any other dial/read failure → Unavailable
//
// AppErrors pass through untouched so callers can map unconditionally.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || isNetTimeout(err) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}

	return &AppError{
		Code:    ErrCodeUnavailable,
		Message: "Unable to reach the API. Please try again.",
		Cause:   err,
	}
}

func isNetTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsAppError reports whether err is an AppError with the given code.
func IsAppError(err error, code ErrorCode) bool {
	return isCode(err, code)
}
