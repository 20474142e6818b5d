package radarr

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrRemote is matched by every RemoteError via errors.Is.
var ErrRemote = errors.New("remote error")

// maxErrorBodySize limits how much of a response body is kept for diagnostics.
const maxErrorBodySize = 64 * 1024

// RemoteError reports a failed call to a Radarr instance: a transport failure
// (StatusCode 0), a non-2xx response, or a body that could not be decoded.
type RemoteError struct {
	// Op is the operation that failed (e.g. "fetch catalog").
	Op string
	// Instance is the name of the endpoint.
	Instance string
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	// Body is the (possibly truncated) response body.
	Body string
	// Err is the underlying error, if any.
	Err error
}

func (e *RemoteError) Error() string {
	prefix := fmt.Sprintf("radarr %s [%s]", e.Op, e.Instance)
	body := strings.TrimSpace(e.Body)

	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", prefix, e.StatusCode, e.Err)
	case body != "":
		return fmt.Sprintf("%s: unexpected status %d: %s", prefix, e.StatusCode, body)
	default:
		return fmt.Sprintf("%s: unexpected status %d", prefix, e.StatusCode)
	}
}

// Unwrap returns the underlying error.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRemote.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// readBodyForError reads at most maxErrorBodySize bytes of r.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	if len(body) == maxErrorBodySize {
		return string(body) + "\n... (truncated)"
	}
	return string(body)
}

// truncateBody caps an already read body the same way readBodyForError does.
func truncateBody(body []byte) string {
	if len(body) > maxErrorBodySize {
		return string(body[:maxErrorBodySize]) + "\n... (truncated)"
	}
	return string(body)
}
