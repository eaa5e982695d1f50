package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var f frame
	require.NoError(t, json.Unmarshal(data, &f))
	return f
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	defer hub.Close()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	c1 := dial(t, srv)
	defer func() { _ = c1.Close() }()
	c2 := dial(t, srv)
	defer func() { _ = c2.Close() }()

	hub.Broadcast("achievementEarned", map[string]string{"userId": "u1"})

	for _, c := range []*websocket.Conn{c1, c2} {
		f := readFrame(t, c)
		assert.Equal(t, "achievementEarned", f.Event)
	}
}

// Broadcasts run on request goroutines, so two award events can fire at the
// same time against the same connection. Writes must be serialized per
// connection or the underlying websocket panics.
func TestConcurrentBroadcasts(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	defer hub.Close()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	conn := dial(t, srv)
	defer func() { _ = conn.Close() }()

	const writers = 16
	const perWriter = 50

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.Broadcast("achievementEarned", map[string]int{"writer": id})
			}
		}(i)
	}

	for i := 0; i < writers*perWriter; i++ {
		f := readFrame(t, conn)
		assert.Equal(t, "achievementEarned", f.Event)
	}
	wg.Wait()
}

func TestBroadcastSurvivesClosedClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	defer hub.Close()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	dead := dial(t, srv)
	require.NoError(t, dead.Close())
	live := dial(t, srv)
	defer func() { _ = live.Close() }()

	// Give the read-drain goroutine a moment to notice the close.
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast("achievementEarned", map[string]string{"userId": "u1"})

	f := readFrame(t, live)
	assert.Equal(t, "achievementEarned", f.Event)
}
