package imagestoreclient

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	json "github.com/eznix86/imagestore-client/jsoncompat"
)

// errorBody is the JSON shape the server uses for error responses.
type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// readBody drains and closes the response body.
func readBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

// classifyStatus turns a non-2xx status into the matching error kind: 4xx is
// a ClientError (caller-correctable), anything from 500 up is a ServerError
// (caller may retry; this client never does). 2xx returns nil.
func classifyStatus(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := errorMessage(body)
	if resp.StatusCode >= 500 {
		return &ServerError{StatusCode: resp.StatusCode, Message: message, Headers: resp.Header}
	}
	return &ClientError{StatusCode: resp.StatusCode, Message: message, Headers: resp.Header}
}

// errorMessage extracts the server's error message, falling back to the raw
// body when it is not the usual JSON error shape.
func errorMessage(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// decodeJSON classifies the status and, on success, unmarshals the body into
// target. Passing a nil target skips decoding for bodyless operations.
func decodeJSON(resp *http.Response, target any) (ResponseMeta, error) {
	meta := ResponseMeta{StatusCode: resp.StatusCode, Headers: resp.Header}

	body, err := readBody(resp)
	if err != nil {
		return meta, &TransportError{Err: err}
	}
	if err := classifyStatus(resp, body); err != nil {
		return meta, err
	}
	if target == nil {
		return meta, nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return meta, fmt.Errorf("decode response: %w", err)
	}
	return meta, nil
}

// headerInt parses an integer response header, returning 0 when absent or
// malformed.
func headerInt(headers http.Header, name string) int64 {
	value := headers.Get(name)
	if value == "" {
		return 0
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
