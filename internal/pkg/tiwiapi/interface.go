// Package tiwiapi talks to the TiWiConnect cloud service that fronts Ryobi
// garage door openers: HTTPS endpoints for login and device discovery, and
// a web socket for pushing module commands.
package tiwiapi

import (
	"time"

	"github.com/shiblon/greendo/internal/pkg/gdo"
)

// Session is what a successful login gives back, notably the api key the
// command socket authenticates with.
type Session struct {
	APIKey string
	Data   map[string]interface{}
}

// Service is the cloud surface the CLI needs: one authenticated session,
// the account's devices, and a socket to push commands through.
//
// The WithX methods configure a copy and must be called before Connect.
type Service interface {
	WithBaseURL(u string) Service
	WithSocketURL(u string) Service
	WithTimeout(d time.Duration) Service

	// Connect logs in, discovers the account's devices and opens the
	// authenticated command socket. On failure nothing is left open.
	Connect(username, password string) error

	// Devices returns the devices discovered during Connect.
	Devices() []*gdo.Device

	Session() Session
	APIKey() string
	SocketURL() string

	// TimeZoneOffset reports the UTC offset of the account's master unit.
	TimeZoneOffset() gdo.Value

	// SendCommand pushes one command over the socket and returns the
	// single reply the service sends back.
	SendCommand(cmd *gdo.CommandPayload) (map[string]interface{}, error)

	// Close shuts the command socket and ends the login session.
	Close() error
}
