package tiwiapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// ResponseError is a response the service rejected, or one that does not
// carry the result a well-formed response would.
type ResponseError struct {
	Reason string
	Code   int
	Data   map[string]interface{}
	Raw    []byte
}

func (e *ResponseError) Error() string {
	if len(e.Raw) > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Reason, e.Code, e.Raw)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Reason, e.Code)
}

// parseResponse reads the body and applies the service's error taxonomy: a
// non-200 status, an err field in the envelope, and a missing or empty
// result all count as failures. On success it returns the whole decoded
// envelope; callers pull what they need from its result field.
func parseResponse(resp *http.Response) (map[string]interface{}, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading the response body")
	}

	data := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, errors.Wrap(err, "decoding the response body")
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ResponseError{Reason: "unexpected status", Code: resp.StatusCode, Data: data, Raw: raw}
	}
	if v, ok := data["err"]; ok && v != nil {
		return nil, &ResponseError{Reason: "service reported an error", Code: resp.StatusCode, Data: data, Raw: raw}
	}
	if falsy(data["result"]) {
		return nil, &ResponseError{Reason: "no result in response", Code: resp.StatusCode, Data: data, Raw: raw}
	}

	return data, nil
}

// falsy reports whether a decoded JSON value is empty the way the service
// treats emptiness: null, false, zero, an empty string, list or object.
func falsy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case float64:
		return t == 0
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	}
	return false
}
