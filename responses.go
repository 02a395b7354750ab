package imagestoreclient

import "net/http"

// ResponseMeta carries the HTTP envelope common to every decoded response,
// for callers that need the raw status code or a response header.
type ResponseMeta struct {
	StatusCode int
	Headers    http.Header
}

// ServerStatus represents the response from /status.json.
type ServerStatus struct {
	ResponseMeta

	Date     string `json:"date"`
	Database bool   `json:"database"`
	Storage  bool   `json:"storage"`
}

// ServerStats represents the response from /stats.json.
type ServerStats struct {
	ResponseMeta

	NumImages int64          `json:"numImages"`
	NumUsers  int64          `json:"numUsers"`
	NumBytes  int64          `json:"numBytes"`
	Custom    map[string]any `json:"custom"`
}

// UserInfo represents the response from the user endpoint.
type UserInfo struct {
	ResponseMeta

	User         string `json:"user"`
	NumImages    int64  `json:"numImages"`
	LastModified string `json:"lastModified"`
}

// AddedImage represents the response from an image upload.
type AddedImage struct {
	ResponseMeta

	ImageIdentifier string `json:"imageIdentifier"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Extension       string `json:"extension"`
}

// DeletedImage represents the response from an image delete.
type DeletedImage struct {
	ResponseMeta

	ImageIdentifier string `json:"imageIdentifier"`
}

// Image is a single entry in an image listing.
type Image struct {
	ImageIdentifier  string         `json:"imageIdentifier"`
	Checksum         string         `json:"checksum"`
	OriginalChecksum string         `json:"originalChecksum"`
	User             string         `json:"user"`
	Size             int64          `json:"size"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	Extension        string         `json:"extension"`
	MIME             string         `json:"mime"`
	Added            string         `json:"added"`
	Updated          string         `json:"updated"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// SearchInfo carries pagination counters for an image listing.
type SearchInfo struct {
	Hits  int64 `json:"hits"`
	Page  uint  `json:"page"`
	Limit uint  `json:"limit"`
	Count int   `json:"count"`
}

// ImageCollection represents the response from the image listing endpoint.
type ImageCollection struct {
	ResponseMeta

	Search SearchInfo `json:"search"`
	Images []Image    `json:"images"`
}

// MetadataResponse represents the metadata attached to one image.
type MetadataResponse struct {
	ResponseMeta

	Metadata map[string]any
}

// ShortURL represents the response from short URL generation.
type ShortURL struct {
	ResponseMeta

	ID string `json:"id"`
}

// ImageProperties carries the properties of a stored image as reported by
// response headers on a HEAD request.
type ImageProperties struct {
	ResponseMeta

	Width     int
	Height    int
	Size      int64
	Extension string
	MIME      string
}
