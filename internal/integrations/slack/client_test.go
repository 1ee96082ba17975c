package slack

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeGetter is a minimal paramstore.Getter stub for use within this package.
type fakeGetter struct {
	val    string
	err    error
	onCall func() // optional; called on each GetParameter invocation
}

func (f *fakeGetter) GetParameter(_ context.Context, _ string) (string, error) {
	if f.onCall != nil {
		f.onCall()
	}
	return f.val, f.err
}

func TestNewClient_NilGetter(t *testing.T) {
	_, err := NewClient(nil, "/sideslacker")
	require.Error(t, err)
	require.Contains(t, err.Error(), "nil")
}

func TestNewClient_EmptyPrefix(t *testing.T) {
	_, err := NewClient(&fakeGetter{}, "  ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "prefix")
}

func TestResolveWebhookURL_FetchedOnFirstCall(t *testing.T) {
	calls := 0
	g := &fakeGetter{val: `{"url":"https://hooks.example.com/services/T0/B0/x"}`}
	g.onCall = func() { calls++ }
	c, err := NewClient(g, "/sideslacker")
	require.NoError(t, err)

	url, err := c.resolveWebhookURL(context.Background())
	require.NoError(t, err)
	require.Equal(t, "https://hooks.example.com/services/T0/B0/x", url)
	require.Equal(t, 1, calls)

	// subsequent calls must never hit SSM again
	_, _ = c.resolveWebhookURL(context.Background())
	_, _ = c.resolveWebhookURL(context.Background())
	require.Equal(t, 1, calls, "SSM must only be called once per process lifetime")
}

func TestResolveWebhookURL_MalformedPayload(t *testing.T) {
	c, err := NewClient(&fakeGetter{val: `not-json`}, "/sideslacker")
	require.NoError(t, err)

	_, err = c.resolveWebhookURL(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "decode webhook url")
}

func TestResolveWebhookURL_EmptyURL(t *testing.T) {
	c, err := NewClient(&fakeGetter{val: `{"url":""}`}, "/sideslacker")
	require.NoError(t, err)

	_, err = c.resolveWebhookURL(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "missing url")
}

func TestNotify_PostsWebhookMessage(t *testing.T) {
	var gotBody webhookMessage
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewClient(&fakeGetter{}, "/sideslacker", WithWebhookURL(srv.URL))
	require.NoError(t, err)

	require.NoError(t, c.Notify(context.Background(), "@kevin", "Sam"))
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, "@kevin, Sam is at the front desk to see you.", gotBody.Text)
}

func TestNotify_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no_service"))
	}))
	defer srv.Close()

	c, err := NewClient(&fakeGetter{}, "/sideslacker", WithWebhookURL(srv.URL))
	require.NoError(t, err)

	err = c.Notify(context.Background(), "@kevin", "Sam")
	require.Error(t, err)

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.HTTPStatusCode())
	require.Equal(t, "no_service", statusErr.Body)
}

func TestNotify_SSMFailurePropagates(t *testing.T) {
	c, err := NewClient(&fakeGetter{err: errors.New("ssm down")}, "/sideslacker")
	require.NoError(t, err)

	err = c.Notify(context.Background(), "@kevin", "Sam")
	require.Error(t, err)
	require.ErrorContains(t, err, "ssm down")
}

func TestNotify_ValidatesInput(t *testing.T) {
	c, err := NewClient(&fakeGetter{}, "/sideslacker", WithWebhookURL("https://hooks.example.com"))
	require.NoError(t, err)

	require.Error(t, c.Notify(context.Background(), "", "Sam"))
	require.Error(t, c.Notify(context.Background(), "@kevin", ""))
}

func TestURLParameterName(t *testing.T) {
	c, err := NewClient(&fakeGetter{}, "/sideslacker/")
	require.NoError(t, err)
	require.Equal(t, "/sideslacker/slack-webhook-url", c.urlParameterName())
}
