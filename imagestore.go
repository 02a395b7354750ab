package imagestoreclient

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	json "github.com/eznix86/imagestore-client/jsoncompat"
)

// identifierHeader carries the image identifier on add responses and on
// short URL HEAD responses.
const identifierHeader = "X-Image-Identifier"

// ServerStatus retrieves the health of the server from /status.json.
func (c *Client) ServerStatus(ctx context.Context) (*ServerStatus, error) {
	url := c.urls().statusURL()

	c.logDebug("Image store request",
		"operation", "ServerStatus",
		"method", http.MethodGet,
		"url", url,
	)

	resp, err := c.send(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, err
	}

	var status ServerStatus
	meta, err := decodeJSON(resp, &status)
	if err != nil {
		return nil, err
	}
	status.ResponseMeta = meta

	c.logDebug("Image store response",
		"operation", "ServerStatus",
		"status_code", meta.StatusCode,
		"database", status.Database,
		"storage", status.Storage,
	)

	return &status, nil
}

// ServerStats retrieves aggregate server statistics from /stats.json.
func (c *Client) ServerStats(ctx context.Context) (*ServerStats, error) {
	url := c.urls().statsURL()

	c.logDebug("Image store request",
		"operation", "ServerStats",
		"method", http.MethodGet,
		"url", url,
	)

	resp, err := c.send(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, err
	}

	var stats ServerStats
	meta, err := decodeJSON(resp, &stats)
	if err != nil {
		return nil, err
	}
	stats.ResponseMeta = meta

	c.logDebug("Image store response",
		"operation", "ServerStats",
		"status_code", meta.StatusCode,
		"num_images", stats.NumImages,
		"num_users", stats.NumUsers,
	)

	return &stats, nil
}

// UserInfo retrieves information about the configured user.
func (c *Client) UserInfo(ctx context.Context) (*UserInfo, error) {
	url := c.urls().userURL()

	c.logDebug("Image store request",
		"operation", "UserInfo",
		"method", http.MethodGet,
		"user", c.credentials.User,
		"url", url,
	)

	resp, err := c.send(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, err
	}

	var info UserInfo
	meta, err := decodeJSON(resp, &info)
	if err != nil {
		return nil, err
	}
	info.ResponseMeta = meta

	c.logDebug("Image store response",
		"operation", "UserInfo",
		"status_code", meta.StatusCode,
		"num_images", info.NumImages,
	)

	return &info, nil
}

// NumImages returns the number of images the user has stored.
func (c *Client) NumImages(ctx context.Context) (int64, error) {
	info, err := c.UserInfo(ctx)
	if err != nil {
		return 0, err
	}
	return info.NumImages, nil
}

// Images lists the user's images, filtered and paginated by the query.
func (c *Client) Images(ctx context.Context, query ImagesQuery) (*ImageCollection, error) {
	url := c.urls().imagesURL(query)

	c.logDebug("Image store request",
		"operation", "Images",
		"method", http.MethodGet,
		"user", c.credentials.User,
		"page", query.Page(),
		"limit", query.Limit(),
		"url", url,
	)

	resp, err := c.send(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, err
	}

	var collection ImageCollection
	meta, err := decodeJSON(resp, &collection)
	if err != nil {
		return nil, err
	}
	collection.ResponseMeta = meta

	c.logDebug("Image store response",
		"operation", "Images",
		"status_code", meta.StatusCode,
		"image_count", len(collection.Images),
		"hits", collection.Search.Hits,
	)

	return &collection, nil
}

// AddImage uploads raw image bytes and returns the server-assigned image.
// The identifier from the response header wins over the body when both are
// present.
func (c *Client) AddImage(ctx context.Context, data []byte) (*AddedImage, error) {
	if len(data) == 0 {
		return nil, errors.New("image data must not be empty")
	}

	b := c.urls()
	url := b.sign(http.MethodPost, b.addImageURL())

	c.logDebug("Image store request",
		"operation", "AddImage",
		"method", http.MethodPost,
		"user", c.credentials.User,
		"size_bytes", len(data),
	)

	resp, err := c.send(ctx, http.MethodPost, url, nil, data)
	if err != nil {
		return nil, err
	}

	var added AddedImage
	meta, err := decodeJSON(resp, &added)
	if err != nil {
		return nil, err
	}
	added.ResponseMeta = meta
	if id := meta.Headers.Get(identifierHeader); id != "" {
		added.ImageIdentifier = id
	}

	c.logDebug("Image store response",
		"operation", "AddImage",
		"status_code", meta.StatusCode,
		"image_identifier", added.ImageIdentifier,
	)

	return &added, nil
}

// AddImageFromPath validates a local file and uploads its contents. The
// validation runs before any network call, so a doomed upload costs nothing.
func (c *Client) AddImageFromPath(ctx context.Context, path string) (*AddedImage, error) {
	if err := validateLocalFile(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InvalidLocalFileError{Path: path, Message: "File could not be read"}
	}
	return c.AddImage(ctx, data)
}

// AddImageFromURL fetches image bytes from a URL and uploads them. A failed
// fetch surfaces as a FetchError and no upload is attempted.
func (c *Client) AddImageFromURL(ctx context.Context, imageURL string) (*AddedImage, error) {
	data, err := c.ImageDataFromURL(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	return c.AddImage(ctx, data)
}

// DeleteImage removes a stored image.
func (c *Client) DeleteImage(ctx context.Context, imageIdentifier string) (*DeletedImage, error) {
	b := c.urls()
	url, err := b.imageURL(imageIdentifier)
	if err != nil {
		return nil, err
	}
	url = b.sign(http.MethodDelete, url)

	c.logDebug("Image store request",
		"operation", "DeleteImage",
		"method", http.MethodDelete,
		"image_identifier", imageIdentifier,
	)

	resp, err := c.send(ctx, http.MethodDelete, url, nil, nil)
	if err != nil {
		return nil, err
	}

	var deleted DeletedImage
	meta, err := decodeJSON(resp, &deleted)
	if err != nil {
		return nil, err
	}
	deleted.ResponseMeta = meta

	c.logDebug("Image store response",
		"operation", "DeleteImage",
		"status_code", meta.StatusCode,
		"image_identifier", deleted.ImageIdentifier,
	)

	return &deleted, nil
}

// ImageData fetches the raw bytes of a stored image.
func (c *Client) ImageData(ctx context.Context, imageIdentifier string) ([]byte, error) {
	url, err := c.urls().imageURL(imageIdentifier)
	if err != nil {
		return nil, err
	}
	return c.ImageDataFromURL(ctx, url)
}

// ImageDataFromURL fetches raw bytes from a URL, which may be external to
// the image store. Any non-2xx response is a FetchError.
func (c *Client) ImageDataFromURL(ctx context.Context, imageURL string) ([]byte, error) {
	c.logDebug("Image store request",
		"operation", "ImageDataFromURL",
		"method", http.MethodGet,
		"url", imageURL,
	)

	resp, err := c.send(ctx, http.MethodGet, imageURL, nil, nil)
	if err != nil {
		return nil, err
	}
	defer c.closeBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{StatusCode: resp.StatusCode, URL: imageURL}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	c.logDebug("Image store response",
		"operation", "ImageDataFromURL",
		"status_code", resp.StatusCode,
		"size_bytes", len(data),
	)

	return data, nil
}

// ImageIdentifierExists checks whether an identifier refers to a stored
// image. A 404 means "no"; every other failure is surfaced as an error.
func (c *Client) ImageIdentifierExists(ctx context.Context, imageIdentifier string) (bool, error) {
	url, err := c.urls().imageURL(imageIdentifier)
	if err != nil {
		return false, err
	}

	c.logDebug("Image store request",
		"operation", "ImageIdentifierExists",
		"method", http.MethodHead,
		"image_identifier", imageIdentifier,
	)

	resp, err := c.send(ctx, http.MethodHead, url, nil, nil)
	if err != nil {
		return false, err
	}
	if resp.StatusCode == http.StatusNotFound {
		c.closeBody(resp.Body)
		return false, nil
	}

	_, err = decodeJSON(resp, nil)
	if err != nil {
		return false, err
	}
	return true, nil
}

// ImageExists checks whether the contents of a local file have already been
// uploaded, by checksumming locally and querying on originalChecksums. No
// speculative upload is performed.
func (c *Client) ImageExists(ctx context.Context, path string) (bool, error) {
	checksum, err := c.ImageChecksum(path)
	if err != nil {
		return false, err
	}

	query := NewImagesQuery().WithLimit(1).WithOriginalChecksums(checksum)
	collection, err := c.Images(ctx, query)
	if err != nil {
		return false, err
	}
	return len(collection.Images) > 0, nil
}

// ImageChecksum computes the content checksum of a local file, matching the
// server's originalChecksum field. The checksum is a lookup key, not a
// security primitive.
func (c *Client) ImageChecksum(path string) (string, error) {
	if err := validateLocalFile(path); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &InvalidLocalFileError{Path: path, Message: "File could not be read"}
	}
	defer func() { _ = f.Close() }()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", &InvalidLocalFileError{Path: path, Message: "File could not be read"}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ImageProperties retrieves the stored properties of an image from the
// headers of a HEAD response. Unlike the existence checks, a 404 here is an
// error.
func (c *Client) ImageProperties(ctx context.Context, imageIdentifier string) (*ImageProperties, error) {
	url, err := c.urls().imageURL(imageIdentifier)
	if err != nil {
		return nil, err
	}

	c.logDebug("Image store request",
		"operation", "ImageProperties",
		"method", http.MethodHead,
		"image_identifier", imageIdentifier,
	)

	resp, err := c.send(ctx, http.MethodHead, url, nil, nil)
	if err != nil {
		return nil, err
	}

	meta, err := decodeJSON(resp, nil)
	if err != nil {
		return nil, err
	}

	return &ImageProperties{
		ResponseMeta: meta,
		Width:        int(headerInt(meta.Headers, "X-Image-Width")),
		Height:       int(headerInt(meta.Headers, "X-Image-Height")),
		Size:         headerInt(meta.Headers, "X-Image-Size"),
		Extension:    meta.Headers.Get("X-Image-Extension"),
		MIME:         meta.Headers.Get("Content-Type"),
	}, nil
}

// Metadata retrieves the metadata attached to an image.
func (c *Client) Metadata(ctx context.Context, imageIdentifier string) (*MetadataResponse, error) {
	url, err := c.urls().metadataURL(imageIdentifier, true)
	if err != nil {
		return nil, err
	}

	c.logDebug("Image store request",
		"operation", "Metadata",
		"method", http.MethodGet,
		"image_identifier", imageIdentifier,
	)

	resp, err := c.send(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeMetadata(resp)
}

// ReplaceMetadata replaces all metadata on an image with the given set.
func (c *Client) ReplaceMetadata(ctx context.Context, imageIdentifier string, metadata map[string]any) (*MetadataResponse, error) {
	return c.writeMetadata(ctx, http.MethodPut, "ReplaceMetadata", imageIdentifier, metadata)
}

// UpdateMetadata merges the given set into the existing metadata.
func (c *Client) UpdateMetadata(ctx context.Context, imageIdentifier string, metadata map[string]any) (*MetadataResponse, error) {
	return c.writeMetadata(ctx, http.MethodPost, "UpdateMetadata", imageIdentifier, metadata)
}

func (c *Client) writeMetadata(ctx context.Context, method, operation, imageIdentifier string, metadata map[string]any) (*MetadataResponse, error) {
	b := c.urls()
	url, err := b.metadataURL(imageIdentifier, false)
	if err != nil {
		return nil, err
	}
	url = b.sign(method, url)

	body, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	c.logDebug("Image store request",
		"operation", operation,
		"method", method,
		"image_identifier", imageIdentifier,
		"field_count", len(metadata),
	)

	headers := http.Header{"Content-Type": []string{"application/json"}}
	resp, err := c.send(ctx, method, url, headers, body)
	if err != nil {
		return nil, err
	}
	return decodeMetadata(resp)
}

// DeleteMetadata removes all metadata from an image.
func (c *Client) DeleteMetadata(ctx context.Context, imageIdentifier string) (*MetadataResponse, error) {
	b := c.urls()
	url, err := b.metadataURL(imageIdentifier, false)
	if err != nil {
		return nil, err
	}
	url = b.sign(http.MethodDelete, url)

	c.logDebug("Image store request",
		"operation", "DeleteMetadata",
		"method", http.MethodDelete,
		"image_identifier", imageIdentifier,
	)

	resp, err := c.send(ctx, http.MethodDelete, url, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeMetadata(resp)
}

func decodeMetadata(resp *http.Response) (*MetadataResponse, error) {
	var metadata map[string]any
	meta, err := decodeJSON(resp, &metadata)
	if err != nil {
		return nil, err
	}
	return &MetadataResponse{ResponseMeta: meta, Metadata: metadata}, nil
}

// shortURLRequest is the JSON body for short URL generation.
type shortURLRequest struct {
	User            string `json:"user"`
	ImageIdentifier string `json:"imageIdentifier"`
	Extension       string `json:"extension,omitempty"`
	Query           string `json:"query,omitempty"`
}

// GenerateShortURL asks the server for a short alias to an image, optionally
// fixing an extension and a transformation query.
func (c *Client) GenerateShortURL(ctx context.Context, imageIdentifier, extension, query string) (*ShortURL, error) {
	b := c.urls()
	url, err := b.shortURLsURL(imageIdentifier)
	if err != nil {
		return nil, err
	}
	url = b.sign(http.MethodPost, url)

	body, err := json.Marshal(shortURLRequest{
		User:            c.credentials.User,
		ImageIdentifier: imageIdentifier,
		Extension:       extension,
		Query:           query,
	})
	if err != nil {
		return nil, fmt.Errorf("encode short URL request: %w", err)
	}

	c.logDebug("Image store request",
		"operation", "GenerateShortURL",
		"method", http.MethodPost,
		"image_identifier", imageIdentifier,
	)

	headers := http.Header{"Content-Type": []string{"application/json"}}
	resp, err := c.send(ctx, http.MethodPost, url, headers, body)
	if err != nil {
		return nil, err
	}

	var short ShortURL
	meta, err := decodeJSON(resp, &short)
	if err != nil {
		return nil, err
	}
	short.ResponseMeta = meta

	c.logDebug("Image store response",
		"operation", "GenerateShortURL",
		"status_code", meta.StatusCode,
		"short_url_id", short.ID,
	)

	return &short, nil
}

// DeleteShortURL removes a short URL alias. The owning image identifier is
// resolved first via a HEAD lookup (the resolution is read-only, so a failed
// first step leaves nothing to undo), then the delete is routed and signed
// using that identifier.
func (c *Client) DeleteShortURL(ctx context.Context, shortURLID string) error {
	b := c.urls()

	lookupURL, err := b.shortURL(shortURLID, "")
	if err != nil {
		return err
	}

	c.logDebug("Image store request",
		"operation", "DeleteShortURL",
		"method", http.MethodHead,
		"short_url_id", shortURLID,
	)

	resp, err := c.send(ctx, http.MethodHead, lookupURL, nil, nil)
	if err != nil {
		return err
	}
	meta, err := decodeJSON(resp, nil)
	if err != nil {
		return err
	}

	imageIdentifier := meta.Headers.Get(identifierHeader)
	if imageIdentifier == "" {
		return fmt.Errorf("short URL response missing %s header", identifierHeader)
	}

	deleteURL, err := b.shortURL(shortURLID, imageIdentifier)
	if err != nil {
		return err
	}
	deleteURL = b.sign(http.MethodDelete, deleteURL)

	resp, err = c.send(ctx, http.MethodDelete, deleteURL, nil, nil)
	if err != nil {
		return err
	}
	if _, err := decodeJSON(resp, nil); err != nil {
		return err
	}

	c.logDebug("Image store response",
		"operation", "DeleteShortURL",
		"short_url_id", shortURLID,
		"image_identifier", imageIdentifier,
	)

	return nil
}

// validateLocalFile rejects paths that do not name a readable, non-empty
// regular file. It runs before any network traffic.
func validateLocalFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &InvalidLocalFileError{Path: path, Message: "File does not exist"}
	}
	if info.IsDir() {
		return &InvalidLocalFileError{Path: path, Message: "Path is a directory"}
	}
	if info.Size() == 0 {
		return &InvalidLocalFileError{Path: path, Message: "File is of zero length"}
	}
	return nil
}
