package requestid

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWithID_RoundTrip(t *testing.T) {
	ctx := WithID(context.Background(), "abc")
	assert.Equal(t, "abc", FromContext(ctx))

	assert.Empty(t, FromContext(context.Background()))
	assert.Empty(t, FromContext(WithID(context.Background(), "")))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "req-123", Sanitize(" req-123 "))

	for _, bad := range []string{"", "has space", strings.Repeat("x", maxLen+1), "tab\tid"} {
		got := Sanitize(bad)
		_, err := uuid.Parse(got)
		assert.NoError(t, err, "expected generated uuid for %q", bad)
	}
}
