package argocd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "secret-token-value"

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL:     server.URL,
		AccessToken: testToken,
	}, nil)
	require.NoError(t, err)
	return client, server
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{AccessToken: "tok"}, nil)
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "https://argocd.example.com"}, nil)
	assert.Error(t, err)
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"items":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL + "/", AccessToken: "tok"}, nil)
	require.NoError(t, err)

	_, err = client.ListApplications(context.Background(), ApplicationListOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/applications", gotPath)
}

func TestClientSendsBearerAndAccept(t *testing.T) {
	var gotAuth, gotAccept string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"items":[]}`))
	}))

	_, err := client.ListApplications(context.Background(), ApplicationListOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+testToken, gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClientErrorTaxonomy(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuthentication},
		{http.StatusForbidden, ErrAuthorization},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusInternalServerError, ErrServer},
		{http.StatusBadGateway, ErrServer},
		{http.StatusServiceUnavailable, ErrServer},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message":"upstream said no"}`))
			}))

			_, err := client.ListApplications(context.Background(), ApplicationListOptions{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "status %d should map to %v, got %v", tt.status, tt.want, err)
		})
	}
}

func TestClientErrorBodyMessagePreferred(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"generic error field","message":"application not found"}`))
	}))

	_, err := client.GetApplication(context.Background(), "missing", GetApplicationOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application not found")
	assert.NotContains(t, err.Error(), "generic error field")
	assert.Contains(t, err.Error(), "404")
}

func TestClientErrorNeverEchoesToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid session"}`))
	}))

	_, err := client.ListApplications(context.Background(), ApplicationListOptions{})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testToken)
}

func TestClientNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := NewClient(Config{BaseURL: server.URL, AccessToken: "tok"}, nil)
	require.NoError(t, err)
	server.Close() // connection refused from here on

	_, err = client.ListApplications(context.Background(), ApplicationListOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestClientParseErrorOnMalformedPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": not-json`))
	}))

	_, err := client.ListApplications(context.Background(), ApplicationListOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestPodLogsParsesWrappedAndBareEntries(t *testing.T) {
	body := `{"result":{"content":"INFO started","podName":"web-0"}}

{"content":"ERROR db timeout","podName":"web-0"}
{"result":{"content":"WARN retrying"}}
`
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "false", r.URL.Query().Get("follow"))
		w.Write([]byte(body))
	}))

	entries, err := client.PodLogs(context.Background(), "guestbook", PodLogOptions{TailLines: 100})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "INFO started", entries[0].Content)
	assert.Equal(t, "ERROR db timeout", entries[1].Content)
	assert.Equal(t, "WARN retrying", entries[2].Content)
}

func TestPodLogsMalformedFraming(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{\"result\":{\"content\":\"ok\"}}\nthis is not json\n"))
	}))

	_, err := client.PodLogs(context.Background(), "guestbook", PodLogOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestPodLogsEmptyStream(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("\n\n"))
	}))

	entries, err := client.PodLogs(context.Background(), "guestbook", PodLogOptions{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSyncPostsRequestBody(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"metadata":{"name":"guestbook"}}`))
	}))

	app, err := client.Sync(context.Background(), "guestbook", SyncRequest{Name: "guestbook", Revision: "main"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v1/applications/guestbook/sync", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	require.NotNil(t, app.Metadata)
	assert.Equal(t, "guestbook", app.Metadata.Name)
}

func TestGetApplicationQueryParams(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	}))

	_, err := client.GetApplication(context.Background(), "guestbook", GetApplicationOptions{
		Refresh: "hard",
		Project: "default",
	})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "refresh=hard")
	assert.Contains(t, gotQuery, "project=default")
}
