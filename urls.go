package imagestoreclient

import (
	"net/url"
	"strings"
	"time"
)

// urlBuilder composes fully-qualified, escaped URLs for every endpoint and
// delegates signing of mutating requests to the signer. User-level resources
// always live on the first pool host; per-image resources route through
// selectHost so requests land on the shard that stores the image.
type urlBuilder struct {
	hosts []string
	user  string
	sig   signer
	now   func() time.Time
}

// validateSegment rejects values that cannot form a single URL path segment.
// A user name or image identifier containing a path separator is a caller
// error, never silently corrected.
func validateSegment(segment string) error {
	if segment == "" || strings.ContainsAny(segment, "/\\") {
		return &InvalidIdentifierError{Identifier: segment}
	}
	return nil
}

func (b *urlBuilder) userHost() string {
	return b.hosts[0]
}

func (b *urlBuilder) statusURL() string {
	return b.userHost() + "/status.json"
}

func (b *urlBuilder) statsURL() string {
	return b.userHost() + "/stats.json"
}

func (b *urlBuilder) userURL() string {
	return b.userHost() + "/users/" + url.PathEscape(b.user) + ".json"
}

// imagesURL is the listing endpoint; the query is always present because
// page, limit and metadata are always serialized.
func (b *urlBuilder) imagesURL(query ImagesQuery) string {
	return b.userHost() + "/users/" + url.PathEscape(b.user) + "/images.json?" + query.Encode()
}

// addImageURL is the upload endpoint. Uploads go to the first host; the
// server assigns the identifier, so there is nothing to shard on yet.
func (b *urlBuilder) addImageURL() string {
	return b.userHost() + "/users/" + url.PathEscape(b.user) + "/images"
}

func (b *urlBuilder) imageURL(imageIdentifier string) (string, error) {
	if err := validateSegment(imageIdentifier); err != nil {
		return "", err
	}
	host := selectHost(b.hosts, imageIdentifier)
	return host + "/users/" + url.PathEscape(b.user) + "/images/" + url.PathEscape(imageIdentifier), nil
}

func (b *urlBuilder) metadataURL(imageIdentifier string, jsonExtension bool) (string, error) {
	base, err := b.imageURL(imageIdentifier)
	if err != nil {
		return "", err
	}
	if jsonExtension {
		return base + "/metadata.json", nil
	}
	return base + "/metadata", nil
}

func (b *urlBuilder) shortURLsURL(imageIdentifier string) (string, error) {
	base, err := b.imageURL(imageIdentifier)
	if err != nil {
		return "", err
	}
	return base + "/shorturls", nil
}

// shortURL addresses a short URL alias. Short URLs belong to an image, so
// when the owning identifier is known it picks the shard host; otherwise the
// first host serves the lookup.
func (b *urlBuilder) shortURL(shortURLID, imageIdentifier string) (string, error) {
	if err := validateSegment(shortURLID); err != nil {
		return "", err
	}
	host := b.userHost()
	if imageIdentifier != "" {
		host = selectHost(b.hosts, imageIdentifier)
	}
	return host + "/s/" + url.PathEscape(shortURLID), nil
}

// sign appends signature and timestamp parameters for mutating methods.
func (b *urlBuilder) sign(method, fullURL string) string {
	return b.sig.signURL(method, fullURL, b.now())
}

// StatusURL returns the unsigned status endpoint URL.
func (c *Client) StatusURL() string {
	return c.urls().statusURL()
}

// StatsURL returns the unsigned stats endpoint URL.
func (c *Client) StatsURL() string {
	return c.urls().statsURL()
}

// UserURL returns the unsigned user info endpoint URL.
func (c *Client) UserURL() string {
	return c.urls().userURL()
}

// ImagesURL returns the unsigned image listing URL for a query.
func (c *Client) ImagesURL(query ImagesQuery) string {
	return c.urls().imagesURL(query)
}

// ImageURL returns the unsigned URL of a stored image, routed to its shard
// host.
func (c *Client) ImageURL(imageIdentifier string) (string, error) {
	return c.urls().imageURL(imageIdentifier)
}

// MetadataURL returns the unsigned metadata URL of a stored image.
func (c *Client) MetadataURL(imageIdentifier string) (string, error) {
	return c.urls().metadataURL(imageIdentifier, true)
}

// ShortURLPath returns the unsigned URL of a short URL alias. Without the
// owning image identifier the first pool host serves the alias.
func (c *Client) ShortURLPath(shortURLID string) (string, error) {
	return c.urls().shortURL(shortURLID, "")
}
