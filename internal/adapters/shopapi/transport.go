package shopapi

import (
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/shopdash/shopdash-ui/internal/http/requestid"
)

const requestIDHeader = requestid.Header

// bearerTransport attaches the client's current token at send time.
// Requests already in flight keep the header they were dispatched with.
type bearerTransport struct {
	client *Client
	next   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	if out.Header.Get(requestIDHeader) == "" {
		id := requestid.FromContext(req.Context())
		if id == "" {
			id = uuid.NewString()
		}
		out.Header.Set(requestIDHeader, id)
	}

	if token := t.client.Token(); token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(out)
	}

	return t.next.RoundTrip(out)
}

// unauthorizedTransport runs the teardown before the 401 reaches the caller.
type unauthorizedTransport struct {
	client *Client
	next   http.RoundTripper
}

func (t *unauthorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		t.client.handleUnauthorized(req.Context())
	}
	return resp, nil
}
