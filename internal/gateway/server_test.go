package gateway

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/soyeahso/kaiwa/internal/config"
	"github.com/soyeahso/kaiwa/internal/llm"
	"github.com/soyeahso/kaiwa/internal/logging"
	"github.com/soyeahso/kaiwa/internal/store"
	"github.com/soyeahso/kaiwa/internal/tutor"
	"github.com/soyeahso/kaiwa/internal/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a server backed by a fresh store and a runner driven
// by client. A nil client builds a server without a runner.
func newTestServer(t *testing.T, cfg config.ServerConfig, client llm.Client) (*Server, *store.ConversationStore) {
	t.Helper()
	log := logging.New(nil, "silent")
	sessions := store.NewConversationStore(log)

	var opts []ServerOption
	if client != nil {
		orch := voice.New(client, voice.ConfigFrom(config.Defaults().OpenAI), log)
		opts = append(opts, WithRunner(tutor.NewRunner(sessions, orch, log)), WithProvider(client.Name()))
	}
	return New(cfg, sessions, log, opts...), sessions
}

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv, _ := newTestServer(t, config.Defaults().Server, &llm.MockClient{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestHealthEndpoint(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
}

func TestNotFoundEndpoint(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/nonexistent")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "not found", body["error"])
	assert.Equal(t, "/nonexistent", body["path"])
}

func TestResolveBindAddr(t *testing.T) {
	tests := []struct {
		bind string
		host string
		port int
		want string
	}{
		{"loopback", "", 8000, "127.0.0.1:8000"},
		{"lan", "", 9999, "0.0.0.0:9999"},
		{"custom", "", 3000, "0.0.0.0:3000"},
		{"custom", "192.168.1.10", 3000, "192.168.1.10:3000"},
		{"custom", "::1", 3000, "[::1]:3000"},
		{"unknown", "", 5000, "127.0.0.1:5000"},
	}

	for _, tt := range tests {
		t.Run(tt.bind+"/"+tt.host, func(t *testing.T) {
			addr := resolveBindAddr(config.ServerConfig{Bind: tt.bind, CustomBindHost: tt.host, Port: tt.port})
			assert.Equal(t, tt.want, addr)
		})
	}
}

func TestServerStart(t *testing.T) {
	cfg := config.Defaults().Server
	cfg.Port = 0 // let OS pick a port

	srv, _ := newTestServer(t, cfg, &llm.MockClient{})

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	// Give it a moment to start
	time.Sleep(100 * time.Millisecond)

	// Stop it
	cancel()

	err := <-errCh
	assert.NoError(t, err)
}

func TestServerStartPortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := config.Defaults().Server
	cfg.Port = ln.Addr().(*net.TCPAddr).Port

	srv, _ := newTestServer(t, cfg, nil)
	err = srv.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
	assert.Empty(t, srv.Addr())
}
