package imagestoreclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
)

// Transport abstracts HTTP request execution. The client never retries,
// pools connections, or handles TLS itself; all of that belongs to the
// Transport implementation.
type Transport interface {
	// Send performs a single HTTP exchange and returns the response or a
	// connection-level error.
	Send(ctx context.Context, method, url string, headers http.Header, body []byte) (*http.Response, error)
}

// HTTPTransport adapts *http.Client to the Transport interface.
type HTTPTransport struct {
	Client *http.Client
}

func (t *HTTPTransport) Send(ctx context.Context, method, url string, headers http.Header, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	httpClient := t.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return httpClient.Do(req)
}

// classifyTransportFailure maps an error returned by Transport.Send to the
// client's taxonomy: cancellation becomes CancelledError, everything else
// becomes TransportError.
func classifyTransportFailure(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &CancelledError{Err: err}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &CancelledError{Err: err}
	}
	return &TransportError{Err: err}
}
