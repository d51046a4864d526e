package tiwiapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{}

// newSocketServer runs handler for each incoming socket. The returned URL
// is ready to dial.
func newSocketServer(t *testing.T, handler func(conn *websocket.Conn)) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrading: %v", err)
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestDialSocketAuthorized(t *testing.T) {
	gotAuth := make(chan map[string]interface{}, 1)

	url := newSocketServer(t, func(conn *websocket.Conn) {
		var req map[string]interface{}
		if err := conn.ReadJSON(&req); err != nil {
			t.Errorf("reading auth request: %v", err)
			return
		}
		gotAuth <- req

		_ = conn.WriteJSON(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      3,
			"params":  map[string]interface{}{"authorized": true},
		})
	})

	s, err := dialSocket(url, time.Second, "user@example.com", "key-123")
	require.NoError(t, err)
	defer s.Close()

	var req map[string]interface{}
	select {
	case req = <-gotAuth:
	case <-time.After(3 * time.Second):
		t.Fatal("server never saw the auth request")
	}

	assert.Equal(t, "2.0", req["jsonrpc"])
	assert.Equal(t, float64(3), req["id"])
	assert.Equal(t, "srvWebSocketAuth", req["method"])
	params, ok := req["params"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "user@example.com", params["varName"])
	assert.Equal(t, "key-123", params["apiKey"])
}

func TestDialSocketUnauthorized(t *testing.T) {
	closed := make(chan struct{})

	url := newSocketServer(t, func(conn *websocket.Conn) {
		var req map[string]interface{}
		if err := conn.ReadJSON(&req); err != nil {
			t.Errorf("reading auth request: %v", err)
			return
		}
		_ = conn.WriteJSON(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      3,
			"params":  map[string]interface{}{"authorized": false},
		})

		// The client is expected to hang up on us.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(closed)
				return
			}
		}
	})

	s, err := dialSocket(url, time.Second, "user@example.com", "key-123")
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), "not authorized")

	waitFor(t, closed, "the client to close the failed socket")
}

func TestDialSocketBadAuthReplies(t *testing.T) {
	tests := []struct {
		name    string
		reply   map[string]interface{}
		wantErr string
	}{
		{"empty reply", map[string]interface{}{}, "no socket auth returned"},
		{"no params", map[string]interface{}{"jsonrpc": "2.0", "id": float64(3)}, "no socket auth params received"},
		{"empty params", map[string]interface{}{"params": map[string]interface{}{}}, "no socket auth params received"},
		{"missing authorized", map[string]interface{}{"params": map[string]interface{}{"varName": "u"}}, "not authorized"},
		{"zero authorized", map[string]interface{}{"params": map[string]interface{}{"authorized": float64(0)}}, "not authorized"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			closed := make(chan struct{})
			url := newSocketServer(t, func(conn *websocket.Conn) {
				var req map[string]interface{}
				if err := conn.ReadJSON(&req); err != nil {
					return
				}
				_ = conn.WriteJSON(tc.reply)
				for {
					if _, _, err := conn.ReadMessage(); err != nil {
						close(closed)
						return
					}
				}
			})

			_, err := dialSocket(url, time.Second, "u", "k")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			waitFor(t, closed, "the client to close the failed socket")
		})
	}
}

func TestSocketRoundTrip(t *testing.T) {
	url := newSocketServer(t, func(conn *websocket.Conn) {
		var req map[string]interface{}
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		_ = conn.WriteJSON(map[string]interface{}{
			"params": map[string]interface{}{"authorized": true},
		})

		var cmd map[string]interface{}
		if err := conn.ReadJSON(&cmd); err != nil {
			t.Errorf("reading command: %v", err)
			return
		}
		_ = conn.WriteJSON(map[string]interface{}{
			"jsonrpc": "2.0",
			"result":  cmd["method"],
		})
	})

	s, err := dialSocket(url, time.Second, "u", "k")
	require.NoError(t, err)
	defer s.Close()

	reply, err := s.roundTrip(map[string]interface{}{"method": "gdoModuleCommand"})
	require.NoError(t, err)
	assert.Equal(t, "gdoModuleCommand", reply["result"])
}
