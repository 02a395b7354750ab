package imagestoreclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
)

// Credentials identify a user against the image store. The private key is
// only ever used as an HMAC key; it is never sent on the wire or logged.
type Credentials struct {
	User       string
	PublicKey  string
	PrivateKey string
}

// Logger is an optional structured logging hook.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Client talks to an image-store deployment. It is immutable after New and
// safe for concurrent use; it holds no per-request state and never retries.
type Client struct {
	credentials Credentials
	hosts       []string
	transport   Transport
	logger      Logger
	now         func() time.Time
}

// Option configures optional Client collaborators.
type Option func(*Client)

// WithTransport injects the HTTP transport. The default wraps
// http.DefaultClient.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithLogger attaches a logger. Without one the client is silent.
func WithLogger(l Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New validates the credentials and host pool and returns a ready Client.
// Host order is significant: image-scoped requests shard across the pool by
// identifier, so the same pool must be configured in the same order
// everywhere.
func New(credentials Credentials, hosts []string, opts ...Option) (*Client, error) {
	if credentials.User == "" || credentials.PublicKey == "" || credentials.PrivateKey == "" {
		return nil, errors.New("credentials require user, public key and private key")
	}
	if err := validateSegment(credentials.User); err != nil {
		return nil, err
	}
	if len(hosts) == 0 {
		return nil, errors.New("at least one host is required")
	}

	normalized := make([]string, len(hosts))
	for i, host := range hosts {
		trimmed := strings.TrimRight(host, "/")
		if trimmed == "" {
			return nil, errors.New("host must not be empty")
		}
		normalized[i] = trimmed
	}

	c := &Client{
		credentials: credentials,
		hosts:       normalized,
		transport:   &HTTPTransport{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// User returns the user the client operates as.
func (c *Client) User() string {
	return c.credentials.User
}

// Hosts returns a copy of the configured host pool.
func (c *Client) Hosts() []string {
	return append([]string(nil), c.hosts...)
}

func (c *Client) urls() *urlBuilder {
	return &urlBuilder{
		hosts: c.hosts,
		user:  c.credentials.User,
		sig: signer{
			publicKey:  c.credentials.PublicKey,
			privateKey: c.credentials.PrivateKey,
		},
		now: c.now,
	}
}

// send performs one exchange through the transport and maps connection-level
// failures and cancellation into the client's error taxonomy.
func (c *Client) send(ctx context.Context, method, url string, headers http.Header, body []byte) (*http.Response, error) {
	resp, err := c.transport.Send(ctx, method, url, headers, body)
	if err != nil {
		classified := classifyTransportFailure(ctx, err)
		c.logError("Image store request failed",
			"method", method,
			"url", url,
			"error", classified.Error(),
		)
		return nil, classified
	}
	return resp, nil
}

// closeBody closes the response body and logs any error if a logger is configured
func (c *Client) closeBody(body io.Closer) {
	if err := body.Close(); err != nil {
		c.logDebug("Failed to close response body", "error", err.Error())
	}
}

// logDebug logs a debug message if a logger is configured
func (c *Client) logDebug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

// logWarn logs a warning message if a logger is configured
func (c *Client) logWarn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

// logError logs an error message if a logger is configured
func (c *Client) logError(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Error(msg, args...)
	}
}
