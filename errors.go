package monitor

import (
	"errors"
	"fmt"
)

// ErrNoData signals that a source produced an empty canonical result.
// Callers must treat it as "source unavailable" and render a degraded
// state, never as a crash.
var ErrNoData = errors.New("no data available from source")

// FetchError reports a transport, timeout or HTTP-status failure after the
// retry budget was exhausted. Callers recover it into an empty series.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
