package imagestoreclient

import (
	"fmt"
	"net/http"
)

// ClientError indicates the server rejected the request as malformed or
// unauthorized (4xx). The caller must change something before retrying.
type ClientError struct {
	StatusCode int
	Message    string
	Headers    http.Header
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("client error: %d - %s", e.StatusCode, e.Message)
}

// ServerError indicates a remote-side failure (5xx). Retrying is the
// caller's decision; the client never retries internally.
type ServerError struct {
	StatusCode int
	Message    string
	Headers    http.Header
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %d - %s", e.StatusCode, e.Message)
}

// FetchError indicates a non-2xx response while fetching raw image bytes
// from a URL, which may be external to the image store.
type FetchError struct {
	StatusCode int
	URL        string
}

func (e *FetchError) Error() string {
	return "Unable to fetch file at URL"
}

// TransportError wraps a connection-level failure (DNS, TCP, TLS) reported
// by the transport, as opposed to an HTTP status error.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// CancelledError indicates the operation was aborted by the caller's
// context (cancellation or deadline), not rejected by the server.
type CancelledError struct {
	Err error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("operation cancelled: %v", e.Err)
}

func (e *CancelledError) Unwrap() error {
	return e.Err
}

// InvalidLocalFileError indicates a local file failed validation before any
// network call was made.
type InvalidLocalFileError struct {
	Path    string
	Message string
}

func (e *InvalidLocalFileError) Error() string {
	return e.Message
}

// InvalidIdentifierError indicates a user name or image identifier contains
// characters that cannot form a URL path segment.
type InvalidIdentifierError struct {
	Identifier string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier: %q", e.Identifier)
}
