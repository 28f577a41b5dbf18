package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
)

type customErr struct{}

func (*customErr) Error() string { return "custom" }

func TestClassify(t *testing.T) {
	assert.Empty(t, Classify(nil))
	assert.Equal(t, "unauthenticated", Classify(apperrors.FromStatus(http.StatusUnauthorized, "")))
	assert.Equal(t, "timeout", Classify(fmt.Errorf("overview: %w", apperrors.MapTransportError(context.DeadlineExceeded))))
	assert.Equal(t, "errors_customerr", Classify(fmt.Errorf("wrap: %w", &customErr{})))
}
