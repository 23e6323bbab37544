package matcher

import (
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies why a comparison failed.
type ErrorKind string

const (
	KindConnectionFailed ErrorKind = "connection_failed"
	KindAPIError         ErrorKind = "api_error"
	KindUnexpected       ErrorKind = "unexpected"
)

// Error is returned by Client for every failure after input validation.
type Error struct {
	Kind       ErrorKind
	URL        string // target URL, set for every kind
	StatusCode int    // KindAPIError only
	Body       string // KindAPIError only
	Message    string // KindUnexpected only
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindConnectionFailed:
		return fmt.Sprintf("connection to %s failed: %v", e.URL, e.Err)
	case KindAPIError:
		return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Body)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a *Error anywhere in err's chain, or "".
func KindOf(err error) ErrorKind {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind
	}
	return ""
}

// classifyTransportError maps a transport failure to a typed Error.
// Failing to dial or resolve the host is a connection failure even when it
// ends in a timeout. Timeouts after the connection is up are unexpected.
func classifyTransportError(target string, err error) *Error {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) || (errors.As(err, &opErr) && opErr.Op == "dial") {
		return &Error{Kind: KindConnectionFailed, URL: target, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindUnexpected, URL: target, Message: fmt.Sprintf("request timed out: %v", err), Err: err}
	}

	if opErr != nil {
		return &Error{Kind: KindConnectionFailed, URL: target, Err: err}
	}
	return &Error{Kind: KindUnexpected, URL: target, Message: err.Error(), Err: err}
}
