package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/shiblon/greendo/internal/pkg/gdo"
	"github.com/shiblon/greendo/internal/pkg/tiwiapi"
)

// newClient builds the service client; tests swap it for a fake.
var newClient = func() tiwiapi.Service {
	return tiwiapi.NewLiveClient()
}

// credentials returns the login email and password, prompting on the
// terminal for whichever the flags, environment and config file did not
// supply. The password prompt does not echo.
func credentials() (string, string, error) {
	email := viper.GetString("auth.email")
	pwd := viper.GetString("auth.password")

	if email == "" {
		fmt.Print("email: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", "", errors.Wrap(err, "reading email")
		}
		email = strings.TrimSpace(line)
	}

	if pwd == "" {
		fmt.Print("password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", "", errors.Wrap(err, "reading password")
		}
		pwd = strings.TrimSpace(string(raw))
	}

	return email, pwd, nil
}

// withClient connects to the service, hands the selected device to fn and
// tears the session down afterwards. A teardown failure is only reported
// when fn itself succeeded.
func withClient(fn func(c tiwiapi.Service, d *gdo.Device) error) (retErr error) {
	email, pwd, err := credentials()
	if err != nil {
		return err
	}

	c := newClient().WithTimeout(viper.GetDuration("request.timeout"))
	if err := c.Connect(email, pwd); err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && retErr == nil {
			retErr = cerr
		}
	}()

	devices := c.Devices()
	if len(devices) == 0 {
		return errors.New("no devices in the account")
	}

	idx := clampDeviceIndex(viper.GetInt("device.index"), len(devices))
	return fn(c, devices[idx])
}

func clampDeviceIndex(idx, n int) int {
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// runCommand either displays the payload without sending it (dry run) or
// pushes it over the socket and displays the service's reply.
func runCommand(c tiwiapi.Service, cmd *gdo.CommandPayload) error {
	if viper.GetBool("dry-run") {
		fmt.Println("Dry Run:")
		return printJSON(cmd)
	}

	fmt.Printf("Request to %s:\n", c.SocketURL())
	if err := printJSON(cmd); err != nil {
		return err
	}

	reply, err := c.SendCommand(cmd)
	if err != nil {
		return err
	}

	fmt.Println("Response:")
	return printJSON(reply)
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "rendering output")
	}

	fmt.Println(string(b))
	return nil
}
