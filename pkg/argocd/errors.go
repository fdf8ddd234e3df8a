package argocd

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Error kinds for upstream and local failures. Callers match them with
// errors.Is; the marks survive wrapping.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrAuthorization  = errors.New("permission denied by upstream")
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("conflicting operation in progress")
	ErrServer         = errors.New("upstream server error")
	ErrNetwork        = errors.New("network failure")
	ErrParse          = errors.New("unexpected payload shape")

	// ErrReadOnly is synthesized locally by the mutation gate and never
	// corresponds to an upstream call.
	ErrReadOnly = errors.New("read-only mode is enabled: mutating operations are not permitted")
)

// errorBody is the JSON error envelope ArgoCD returns on failed calls.
// Both fields are optional; either may carry the useful text.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// apiError converts a non-2xx upstream response into a marked error carrying
// the HTTP status and the upstream message. The bearer token is never part
// of the message.
func apiError(status int, body []byte) error {
	msg := string(body)
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			msg = parsed.Message
		} else if parsed.Error != "" {
			msg = parsed.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	err := errors.Newf("argocd api error (%d): %s", status, msg)
	return errors.Mark(err, kindForStatus(status))
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrAuthentication
	case status == http.StatusForbidden:
		return ErrAuthorization
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status >= 500:
		return ErrServer
	default:
		return ErrServer
	}
}
