package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trail/app"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	h := New(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	srv := httptest.NewServer(h.Handler())
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return h, srv
}

func readSnapshot(t *testing.T, c *websocket.Conn) app.Snapshot {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, b, err := c.ReadMessage()
	require.NoError(t, err)
	var s app.Snapshot
	require.NoError(t, json.Unmarshal(b, &s))
	return s
}

func TestNewClientGetsLastSnapshotThenUpdates(t *testing.T) {
	h, srv := startHub(t)

	h.Publish(app.Snapshot{Value: 1000, Ritual: "idle"})
	require.Eventually(t, func() bool { return h.Health().Last != nil }, 2*time.Second, 5*time.Millisecond)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, 1000, readSnapshot(t, c).Value)

	h.Publish(app.Snapshot{Value: 1940, Ritual: "hold", Runs: 1})
	s := readSnapshot(t, c)
	assert.Equal(t, 1940, s.Value)
	assert.Equal(t, "hold", s.Ritual)
}

func TestHealth(t *testing.T) {
	h, srv := startHub(t)
	h.Publish(app.Snapshot{Value: 42})
	require.Eventually(t, func() bool { return h.Health().Last != nil }, 2*time.Second, 5*time.Millisecond)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got Health
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.NotNil(t, got.Last)
	assert.Equal(t, 42, got.Last.Value)
	assert.NotEmpty(t, got.Build)
}

func TestPublishNeverBlocks(t *testing.T) {
	h := New(zerolog.Nop())
	done := make(chan struct{})
	go func() {
		for i := 0; i < queueLen*4; i++ {
			h.Publish(app.Snapshot{Cycle: uint64(i)})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
	assert.Equal(t, uint64(queueLen*3), h.Health().Dropped)
}
