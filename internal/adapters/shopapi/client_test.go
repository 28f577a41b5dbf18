package shopapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
	"github.com/shopdash/shopdash-ui/internal/http/requestid"
	"github.com/shopdash/shopdash-ui/internal/testutil"
)

func newTestClient(t *testing.T, stub *testutil.APIStub) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: stub.URL()})
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001/api", c.BaseURL())

	c, err = NewClient(Config{BaseURL: "https://api.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/api", c.BaseURL())

	_, err = NewClient(Config{BaseURL: "ftp://api.example.com"})
	require.Error(t, err)

	_, err = NewClient(Config{BaseURL: "http://"})
	require.Error(t, err)
}

func TestClient_AttachesBearerOnlyWhenTokenSet(t *testing.T) {
	stub := testutil.NewAPIStub(t)
	stub.JSON(http.MethodGet, "/dashboard/overview", http.StatusOK, map[string]any{"totalOrders": 1})
	c := newTestClient(t, stub)

	_, err := c.Overview(context.Background())
	require.NoError(t, err)

	c.SetToken("t1")
	_, err = c.Overview(context.Background())
	require.NoError(t, err)

	c.SetToken("")
	_, err = c.Overview(context.Background())
	require.NoError(t, err)

	reqs := stub.Requests()
	require.Len(t, reqs, 3)
	assert.Empty(t, reqs[0].Authorization)
	assert.Equal(t, "Bearer t1", reqs[1].Authorization)
	assert.Empty(t, reqs[2].Authorization)
}

func TestClient_PropagatesRequestID(t *testing.T) {
	stub := testutil.NewAPIStub(t)
	stub.JSON(http.MethodGet, "/dashboard/overview", http.StatusOK, map[string]any{})
	c := newTestClient(t, stub)

	ctx := requestid.WithID(context.Background(), "req-42")
	_, err := c.Overview(ctx)
	require.NoError(t, err)
	_, err = c.Overview(context.Background())
	require.NoError(t, err)

	reqs := stub.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "req-42", reqs[0].RequestID)
	assert.NotEmpty(t, reqs[1].RequestID)
}

func TestClient_UnauthorizedRunsHookBeforeReturning(t *testing.T) {
	stub := testutil.NewAPIStub(t)
	stub.JSON(http.MethodGet, "/sync/status", http.StatusUnauthorized, map[string]string{"error": "Token expired"})
	c := newTestClient(t, stub)
	c.SetToken("t1")

	var hookCalls int
	var tokenSeenByHook string
	c.OnUnauthorized(func(context.Context) {
		hookCalls++
		tokenSeenByHook = c.Token()
	})

	_, err := c.SyncStatus(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthenticated(err))
	assert.Equal(t, "Token expired", apperrors.UserMessage(err, ""))
	assert.Equal(t, 1, hookCalls)
	assert.Empty(t, tokenSeenByHook)
	assert.Empty(t, c.Token())
}

func TestClient_UnauthorizedWithoutHookClearsToken(t *testing.T) {
	stub := testutil.NewAPIStub(t)
	stub.JSON(http.MethodGet, "/customers", http.StatusUnauthorized, map[string]string{"error": "nope"})
	c := newTestClient(t, stub)
	c.SetToken("t1")

	_, err := c.Customers(context.Background())
	require.Error(t, err)
	assert.Empty(t, c.Token())
}

func TestClient_OtherStatusesPassThrough(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     any
		wantCode apperrors.ErrorCode
		wantMsg  string
	}{
		{
			name:     "error field",
			status:   http.StatusBadRequest,
			body:     map[string]string{"error": "Invalid credentials"},
			wantCode: apperrors.ErrCodeValidation,
			wantMsg:  "Invalid credentials",
		},
		{
			name:     "message field",
			status:   http.StatusConflict,
			body:     map[string]string{"message": "Sync already running"},
			wantCode: apperrors.ErrCodeConflict,
			wantMsg:  "Sync already running",
		},
		{
			name:     "forbidden",
			status:   http.StatusForbidden,
			body:     map[string]string{"error": "Admins only"},
			wantCode: apperrors.ErrCodeForbidden,
			wantMsg:  "Admins only",
		},
		{
			name:     "no body",
			status:   http.StatusInternalServerError,
			body:     nil,
			wantCode: apperrors.ErrCodeInternal,
			wantMsg:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := testutil.NewAPIStub(t)
			stub.Handle(http.MethodGet, "/products", func(w http.ResponseWriter, _ *http.Request) {
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				testutil.WriteJSON(w, tt.status, tt.body)
			})
			c := newTestClient(t, stub)
			c.SetToken("t1")

			_, err := c.Products(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
			assert.Equal(t, tt.status, apperrors.GetStatus(err))
			assert.Equal(t, tt.wantMsg, apperrors.UserMessage(err, ""))
			assert.Equal(t, "t1", c.Token(), "non-401 errors must not touch the token")
		})
	}
}

func TestClient_ErrorDetails(t *testing.T) {
	stub := testutil.NewAPIStub(t)
	stub.JSON(http.MethodPost, "/auth/register", http.StatusBadRequest, map[string]any{
		"error":   "Validation failed",
		"details": []map[string]string{{"field": "email"}},
	})
	c := newTestClient(t, stub)

	_, err := c.Register(context.Background(), domainauth.RegisterInput{Email: "x"})
	require.Error(t, err)
	assert.Equal(t, "Validation failed", apperrors.UserMessage(err, ""))
	assert.JSONEq(t, `[{"field":"email"}]`, ErrorDetails(err))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)
	c.SetToken("t1")

	_, err = c.Overview(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err), "got %v", err)
	assert.True(t, apperrors.IsTransport(err))
	assert.Equal(t, "t1", c.Token())
}

func TestClient_CanceledContext(t *testing.T) {
	stub := testutil.NewAPIStub(t)
	c := newTestClient(t, stub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Overview(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsCanceled(err), "got %v", err)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: addr})
	require.NoError(t, err)

	_, err = c.Overview(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err), "got %v", err)
}

func TestClient_ForkHasIndependentToken(t *testing.T) {
	stub := testutil.NewAPIStub(t)
	stub.JSON(http.MethodGet, "/auth/profile", http.StatusUnauthorized, map[string]string{"error": "expired"})
	parent := newTestClient(t, stub)
	parent.SetToken("parent")

	fork := parent.Fork()
	assert.Empty(t, fork.Token())
	fork.SetToken("fork")

	var parentHook, forkHook int
	parent.OnUnauthorized(func(context.Context) { parentHook++ })
	fork.OnUnauthorized(func(context.Context) { forkHook++ })

	_, err := fork.Profile(context.Background())
	require.Error(t, err)

	assert.Equal(t, "parent", parent.Token())
	assert.Empty(t, fork.Token())
	assert.Equal(t, 0, parentHook)
	assert.Equal(t, 1, forkHook)
	assert.Equal(t, parent.BaseURL(), fork.BaseURL())
}

func TestEndpointTag(t *testing.T) {
	assert.Equal(t, "/tenants/users/:id", endpointTag("/tenants/users/abc"))
	assert.Equal(t, "/sync/logs/:id", endpointTag("sync/logs/123"))
	assert.Equal(t, "/dashboard/overview", endpointTag("/dashboard/overview"))
}
