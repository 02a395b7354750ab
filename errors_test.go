package imagestoreclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "client error",
			err:      &ClientError{StatusCode: 400, Message: "Invalid image"},
			expected: "client error: 400 - Invalid image",
		},
		{
			name:     "server error",
			err:      &ServerError{StatusCode: 503, Message: "Database error"},
			expected: "server error: 503 - Database error",
		},
		{
			name:     "fetch error",
			err:      &FetchError{StatusCode: 404, URL: "http://example.com/i.png"},
			expected: "Unable to fetch file at URL",
		},
		{
			name:     "invalid local file",
			err:      &InvalidLocalFileError{Path: "/tmp/x", Message: "File is of zero length"},
			expected: "File is of zero length",
		},
		{
			name:     "invalid identifier",
			err:      &InvalidIdentifierError{Identifier: "a/b"},
			expected: `invalid identifier: "a/b"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := &TransportError{Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCancelledError_Unwrap(t *testing.T) {
	err := &CancelledError{Err: context.DeadlineExceeded}

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantClient bool
		wantServer bool
	}{
		{name: "200", statusCode: http.StatusOK},
		{name: "201", statusCode: http.StatusCreated},
		{name: "400", statusCode: http.StatusBadRequest, wantClient: true},
		{name: "404", statusCode: http.StatusNotFound, wantClient: true},
		{name: "409", statusCode: http.StatusConflict, wantClient: true},
		{name: "500", statusCode: http.StatusInternalServerError, wantServer: true},
		{name: "503", statusCode: http.StatusServiceUnavailable, wantServer: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.statusCode, Header: http.Header{}}
			err := classifyStatus(resp, []byte(`{"error":{"code":0,"message":"boom"}}`))

			switch {
			case tt.wantClient:
				var clientErr *ClientError
				require.ErrorAs(t, err, &clientErr)
				assert.Equal(t, tt.statusCode, clientErr.StatusCode)
				assert.Equal(t, "boom", clientErr.Message)
			case tt.wantServer:
				var serverErr *ServerError
				require.ErrorAs(t, err, &serverErr)
				assert.Equal(t, tt.statusCode, serverErr.StatusCode)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestClassifyTransportFailure(t *testing.T) {
	t.Run("plain error becomes TransportError", func(t *testing.T) {
		err := classifyTransportFailure(context.Background(), errors.New("dns failure"))

		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
	})

	t.Run("context cancellation becomes CancelledError", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := classifyTransportFailure(ctx, fmt.Errorf("request aborted: %w", context.Canceled))

		var cancelled *CancelledError
		require.ErrorAs(t, err, &cancelled)
	})

	t.Run("expired context classifies even when the cause is opaque", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := classifyTransportFailure(ctx, errors.New("use of closed network connection"))

		var cancelled *CancelledError
		require.ErrorAs(t, err, &cancelled)
	})
}
