package imagestoreclient

import "context"

// ImageService defines the full operation surface of the image store client.
// Consumers that only need a subset should declare their own narrower
// interface; this one exists for mocking the whole client.
type ImageService interface {
	// ServerStatus retrieves the health of the server.
	ServerStatus(ctx context.Context) (*ServerStatus, error)

	// ServerStats retrieves aggregate server statistics.
	ServerStats(ctx context.Context) (*ServerStats, error)

	// UserInfo retrieves information about the configured user.
	UserInfo(ctx context.Context) (*UserInfo, error)

	// NumImages returns the number of images the user has stored.
	NumImages(ctx context.Context) (int64, error)

	// Images lists the user's images, filtered and paginated by the query.
	Images(ctx context.Context, query ImagesQuery) (*ImageCollection, error)

	// AddImage uploads raw image bytes.
	AddImage(ctx context.Context, data []byte) (*AddedImage, error)

	// AddImageFromPath uploads the contents of a local file.
	AddImageFromPath(ctx context.Context, path string) (*AddedImage, error)

	// AddImageFromURL fetches image bytes from a URL and uploads them.
	AddImageFromURL(ctx context.Context, imageURL string) (*AddedImage, error)

	// DeleteImage removes a stored image.
	DeleteImage(ctx context.Context, imageIdentifier string) (*DeletedImage, error)

	// ImageData fetches the raw bytes of a stored image.
	ImageData(ctx context.Context, imageIdentifier string) ([]byte, error)

	// ImageDataFromURL fetches raw bytes from an arbitrary URL.
	ImageDataFromURL(ctx context.Context, imageURL string) ([]byte, error)

	// ImageIdentifierExists checks whether an identifier refers to a stored image.
	ImageIdentifierExists(ctx context.Context, imageIdentifier string) (bool, error)

	// ImageExists checks whether a local file's contents are already stored.
	ImageExists(ctx context.Context, path string) (bool, error)

	// ImageProperties retrieves the stored properties of an image.
	ImageProperties(ctx context.Context, imageIdentifier string) (*ImageProperties, error)

	// Metadata retrieves the metadata attached to an image.
	Metadata(ctx context.Context, imageIdentifier string) (*MetadataResponse, error)

	// ReplaceMetadata replaces all metadata on an image.
	ReplaceMetadata(ctx context.Context, imageIdentifier string, metadata map[string]any) (*MetadataResponse, error)

	// UpdateMetadata merges new fields into the existing metadata.
	UpdateMetadata(ctx context.Context, imageIdentifier string, metadata map[string]any) (*MetadataResponse, error)

	// DeleteMetadata removes all metadata from an image.
	DeleteMetadata(ctx context.Context, imageIdentifier string) (*MetadataResponse, error)

	// GenerateShortURL asks the server for a short alias to an image.
	GenerateShortURL(ctx context.Context, imageIdentifier, extension, query string) (*ShortURL, error)

	// DeleteShortURL removes a short URL alias.
	DeleteShortURL(ctx context.Context, shortURLID string) error
}

// Compile-time interface compliance check
var _ ImageService = (*Client)(nil)
