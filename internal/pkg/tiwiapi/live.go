package tiwiapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/shiblon/greendo/internal/pkg/gdo"
	"github.com/shiblon/greendo/internal/pkg/logging"
)

const (
	defaultBaseURL   = "https://tti.tiwiconnect.com/api"
	defaultSocketURL = "wss://tti.tiwiconnect.com/api/wsrpc"
)

// Live is the Service implementation that talks to the real TiWiConnect
// endpoints.
type Live struct {
	baseURL   string
	socketURL string
	timeout   time.Duration

	httpClient *http.Client
	ws         *socket
	session    Session
	devices    []*gdo.Device
	master     gdo.Attr
}

func NewLiveClient() *Live {
	return &Live{
		baseURL:   defaultBaseURL,
		socketURL: defaultSocketURL,
	}
}

func (c *Live) WithBaseURL(u string) Service {
	nc := *c
	nc.baseURL = strings.TrimSuffix(u, "/")
	return &nc
}

func (c *Live) WithSocketURL(u string) Service {
	nc := *c
	nc.socketURL = u
	return &nc
}

func (c *Live) WithTimeout(d time.Duration) Service {
	nc := *c
	nc.timeout = d
	return &nc
}

// Connect logs in, fetches the account's devices, locates the master unit
// and opens the authenticated command socket, in that order. When any step
// after login fails the session is torn down again before the error comes
// back, so the caller never holds a half-connected client.
func (c *Live) Connect(username, password string) error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return errors.Wrap(err, "creating the cookie jar")
	}
	c.httpClient = &http.Client{Jar: jar, Timeout: c.timeout}

	if err := c.login(username, password); err != nil {
		return err
	}

	connected := false
	defer func() {
		if !connected {
			if cerr := c.Close(); cerr != nil {
				logging.Logger().Debugf("tearing down after failed connect: %v", cerr)
			}
		}
	}()

	if err := c.fetchDevices(); err != nil {
		return err
	}

	found := false
	for _, d := range c.devices {
		if d.Master.Key() != "" {
			c.master = d.Master
			found = true
			break
		}
	}
	if !found {
		return errors.New("couldn't find master unit")
	}

	ws, err := dialSocket(c.socketURL, c.timeout, username, c.session.APIKey)
	if err != nil {
		return err
	}
	c.ws = ws

	logging.Logger().Debugf("connected as %s with %d devices", username, len(c.devices))
	connected = true
	return nil
}

// sendRequest performs one HTTPS exchange with the service. A nil body
// turns into a GET, anything else is POSTed as JSON. The odd transform
// headers are what the mobile app sends; the service misbehaves without
// them.
func (c *Live) sendRequest(path string, body interface{}) (map[string]interface{}, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var (
		req  *http.Request
		rerr error
	)
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling the request body")
		}
		req, rerr = http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
		if rerr == nil {
			req.Header.Set("Content-Type", "application/json; charset=utf-8")
		}
	} else {
		req, rerr = http.NewRequest(http.MethodGet, c.baseURL+path, nil)
		if rerr == nil {
			req.Header.Set("x-tc-transformversion", "0.2")
		}
	}
	if rerr != nil {
		return nil, errors.Wrap(rerr, "building the request")
	}
	req.Header.Set("x-tc-transform", "tti-app")

	logging.Logger().Debugf("%s %s", req.Method, req.URL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "requesting %s", path)
	}
	defer resp.Body.Close()

	return parseResponse(resp)
}

func (c *Live) login(username, password string) error {
	data, err := c.sendRequest("/login", map[string]interface{}{
		"username": username,
		"password": password,
	})
	if err != nil {
		return errors.Wrap(err, "logging in")
	}

	result, _ := data["result"].(map[string]interface{})
	auth, _ := result["auth"].(map[string]interface{})
	key, _ := auth["apiKey"].(string)
	if key == "" {
		return errors.New("no api key in login response")
	}

	c.session = Session{APIKey: key, Data: result}
	return nil
}

func (c *Live) fetchDevices() error {
	data, err := c.sendRequest("/devices", nil)
	if err != nil {
		return errors.Wrap(err, "listing devices")
	}

	metaList, ok := data["result"].([]interface{})
	if !ok {
		return errors.New("malformed device list")
	}

	var devices []*gdo.Device
	for _, entry := range metaList {
		meta, ok := entry.(map[string]interface{})
		if !ok {
			return errors.New("malformed device list entry")
		}
		name, _ := meta["varName"].(string)
		if name == "" {
			return errors.New("device list entry has no varName")
		}

		dd, err := c.sendRequest("/devices/"+name, nil)
		if err != nil {
			return errors.Wrapf(err, "fetching device %s", name)
		}

		// The details come back as a list. Nobody has seen more than one
		// element in it, so the first one is the device.
		results, ok := dd["result"].([]interface{})
		if !ok || len(results) == 0 {
			return errors.Errorf("no details for device %s", name)
		}
		details, ok := results[0].(map[string]interface{})
		if !ok {
			return errors.Errorf("malformed details for device %s", name)
		}

		devices = append(devices, gdo.NewDevice(meta, details))
	}

	c.devices = devices
	return nil
}

func (c *Live) Devices() []*gdo.Device {
	return c.devices
}

func (c *Live) Session() Session {
	return c.session
}

func (c *Live) APIKey() string {
	return c.session.APIKey
}

func (c *Live) SocketURL() string {
	return c.socketURL
}

func (c *Live) TimeZoneOffset() gdo.Value {
	return c.master.Lookup("timeZoneOffset", "value")
}

func (c *Live) SendCommand(cmd *gdo.CommandPayload) (map[string]interface{}, error) {
	if c.ws == nil {
		return nil, errors.New("not connected")
	}

	logging.Logger().Debugf("sending %s for topic %s", cmd.Method, cmd.Params.Topic)
	return c.ws.roundTrip(cmd)
}

// Close shuts down the command socket and ends the login session. It is
// safe to call on a client that never finished connecting.
func (c *Live) Close() error {
	if c.ws != nil {
		if err := c.ws.Close(); err != nil {
			logging.Logger().Debugf("closing the command socket: %v", err)
		}
		c.ws = nil
	}

	if c.httpClient == nil {
		return nil
	}
	if _, err := c.sendRequest("/logout", nil); err != nil {
		return errors.Wrap(err, "logging out")
	}
	c.httpClient = nil
	return nil
}
