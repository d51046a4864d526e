package tiwiapi

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

type socketAuthRequest struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      int              `json:"id"`
	Method  string           `json:"method"`
	Params  socketAuthParams `json:"params"`
}

type socketAuthParams struct {
	VarName string `json:"varName"`
	APIKey  string `json:"apiKey"`
}

// socket wraps the wsrpc connection. The service speaks a strict
// send-one-read-one conversation: the auth handshake first, then one reply
// per command.
type socket struct {
	conn    *websocket.Conn
	timeout time.Duration
}

// dialSocket opens the command socket and runs the auth handshake. When
// the handshake fails the connection is closed before the error is
// returned, so a failed dial never leaks a socket.
func dialSocket(url string, timeout time.Duration, username, apiKey string) (*socket, error) {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "dialing the command socket")
	}

	s := &socket{conn: conn, timeout: timeout}
	if err := s.authenticate(username, apiKey); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

func (s *socket) deadline() time.Time {
	if s.timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(s.timeout)
}

func (s *socket) writeJSON(v interface{}) error {
	if err := s.conn.SetWriteDeadline(s.deadline()); err != nil {
		return err
	}
	return s.conn.WriteJSON(v)
}

func (s *socket) readJSON(v interface{}) error {
	if err := s.conn.SetReadDeadline(s.deadline()); err != nil {
		return err
	}
	return s.conn.ReadJSON(v)
}

func (s *socket) authenticate(username, apiKey string) error {
	req := socketAuthRequest{
		JSONRPC: "2.0",
		ID:      3,
		Method:  "srvWebSocketAuth",
		Params: socketAuthParams{
			VarName: username,
			APIKey:  apiKey,
		},
	}
	if err := s.writeJSON(req); err != nil {
		return errors.Wrap(err, "sending socket auth")
	}

	var reply map[string]interface{}
	if err := s.readJSON(&reply); err != nil {
		return errors.Wrap(err, "reading socket auth reply")
	}

	if len(reply) == 0 {
		return errors.New("no socket auth returned")
	}
	params, _ := reply["params"].(map[string]interface{})
	if len(params) == 0 {
		return errors.New("no socket auth params received")
	}
	if v, ok := params["authorized"]; !ok || falsy(v) {
		return errors.Errorf("socket not authorized: %v", reply)
	}

	return nil
}

// roundTrip sends one command and waits for the single reply the service
// sends back.
func (s *socket) roundTrip(cmd interface{}) (map[string]interface{}, error) {
	if err := s.writeJSON(cmd); err != nil {
		return nil, errors.Wrap(err, "sending command")
	}

	var reply map[string]interface{}
	if err := s.readJSON(&reply); err != nil {
		return nil, errors.Wrap(err, "reading command reply")
	}

	return reply, nil
}

func (s *socket) Close() error {
	return s.conn.Close()
}
