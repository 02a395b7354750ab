package imagestoreclient

import (
	"fmt"
	"net/url"
	"strings"
)

// SortEntry describes one sort criterion for image listings.
type SortEntry struct {
	Field      string
	Descending bool
}

// ImagesQuery is an immutable builder for image listing parameters. Every
// With* method returns a copy, so a query can be shared and extended without
// affecting earlier values.
type ImagesQuery struct {
	page              uint
	limit             uint
	metadata          bool
	ids               []string
	checksums         []string
	originalChecksums []string
	sort              []SortEntry
}

// NewImagesQuery returns a query with the defaults: page 1, limit 20, no
// metadata, no filters.
func NewImagesQuery() ImagesQuery {
	return ImagesQuery{page: 1, limit: 20}
}

// WithPage sets the page number. Values below 1 are clamped to 1.
func (q ImagesQuery) WithPage(page uint) ImagesQuery {
	if page < 1 {
		page = 1
	}
	q.page = page
	return q
}

// WithLimit sets the page size. Values below 1 are clamped to 1.
func (q ImagesQuery) WithLimit(limit uint) ImagesQuery {
	if limit < 1 {
		limit = 1
	}
	q.limit = limit
	return q
}

// WithMetadata controls whether image metadata is included in the listing.
func (q ImagesQuery) WithMetadata(include bool) ImagesQuery {
	q.metadata = include
	return q
}

// WithIDs filters the listing to the given image identifiers.
func (q ImagesQuery) WithIDs(ids ...string) ImagesQuery {
	q.ids = append([]string(nil), ids...)
	return q
}

// WithChecksums filters the listing by stored image checksums.
func (q ImagesQuery) WithChecksums(checksums ...string) ImagesQuery {
	q.checksums = append([]string(nil), checksums...)
	return q
}

// WithOriginalChecksums filters the listing by checksums of the images as
// originally uploaded, before any server-side transformation.
func (q ImagesQuery) WithOriginalChecksums(checksums ...string) ImagesQuery {
	q.originalChecksums = append([]string(nil), checksums...)
	return q
}

// WithSort appends sort criteria, applied in order.
func (q ImagesQuery) WithSort(entries ...SortEntry) ImagesQuery {
	q.sort = append(append([]SortEntry(nil), q.sort...), entries...)
	return q
}

// Page returns the page number.
func (q ImagesQuery) Page() uint { return q.page }

// Limit returns the page size.
func (q ImagesQuery) Limit() uint { return q.limit }

// Metadata reports whether metadata inclusion is requested.
func (q ImagesQuery) Metadata() bool { return q.metadata }

// Encode serializes the query in its canonical order: page, limit, metadata,
// then any ids, checksums and originalChecksums as indexed array parameters,
// then sort entries. The order is a wire contract; servers may key caches on
// it, so url.Values (which sorts alphabetically) is deliberately not used.
func (q ImagesQuery) Encode() string {
	metadata := "0"
	if q.metadata {
		metadata = "1"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "page=%d&limit=%d&metadata=%s", q.page, q.limit, metadata)

	appendIndexed(&sb, "ids", q.ids)
	appendIndexed(&sb, "checksums", q.checksums)
	appendIndexed(&sb, "originalChecksums", q.originalChecksums)

	for i, entry := range q.sort {
		value := entry.Field
		if entry.Descending {
			value += ":desc"
		}
		fmt.Fprintf(&sb, "&%s=%s", indexedName("sort", i), escapeQueryValue(value))
	}

	return sb.String()
}

// appendIndexed writes name[0]=v0&name[1]=v1... with brackets
// percent-encoded. Empty collections are omitted entirely.
func appendIndexed(sb *strings.Builder, name string, values []string) {
	for i, v := range values {
		fmt.Fprintf(sb, "&%s=%s", indexedName(name, i), escapeQueryValue(v))
	}
}

func indexedName(name string, index int) string {
	return fmt.Sprintf("%s%%5B%d%%5D", name, index)
}

func escapeQueryValue(v string) string {
	return url.QueryEscape(v)
}
