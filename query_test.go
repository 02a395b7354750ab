package imagestoreclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImagesQuery_Defaults(t *testing.T) {
	q := NewImagesQuery()

	assert.Equal(t, uint(1), q.Page())
	assert.Equal(t, uint(20), q.Limit())
	assert.False(t, q.Metadata())
	assert.Equal(t, "page=1&limit=20&metadata=0", q.Encode())
}

func TestImagesQuery_Encode(t *testing.T) {
	tests := []struct {
		name     string
		query    ImagesQuery
		expected string
	}{
		{
			name:     "limit and ids",
			query:    NewImagesQuery().WithLimit(10).WithIDs("id1", "id2"),
			expected: "page=1&limit=10&metadata=0&ids%5B0%5D=id1&ids%5B1%5D=id2",
		},
		{
			name:     "page and metadata",
			query:    NewImagesQuery().WithPage(3).WithMetadata(true),
			expected: "page=3&limit=20&metadata=1",
		},
		{
			name:     "checksums",
			query:    NewImagesQuery().WithChecksums("aaa", "bbb"),
			expected: "page=1&limit=20&metadata=0&checksums%5B0%5D=aaa&checksums%5B1%5D=bbb",
		},
		{
			name:     "original checksums",
			query:    NewImagesQuery().WithLimit(1).WithOriginalChecksums("cafebabe"),
			expected: "page=1&limit=1&metadata=0&originalChecksums%5B0%5D=cafebabe",
		},
		{
			name:     "sort ascending",
			query:    NewImagesQuery().WithSort(SortEntry{Field: "size"}),
			expected: "page=1&limit=20&metadata=0&sort%5B0%5D=size",
		},
		{
			name:     "sort mixed directions",
			query:    NewImagesQuery().WithSort(SortEntry{Field: "size", Descending: true}, SortEntry{Field: "added"}),
			expected: "page=1&limit=20&metadata=0&sort%5B0%5D=size%3Adesc&sort%5B1%5D=added",
		},
		{
			name: "canonical collection order",
			query: NewImagesQuery().
				WithSort(SortEntry{Field: "size"}).
				WithOriginalChecksums("occ").
				WithChecksums("cc").
				WithIDs("id"),
			expected: "page=1&limit=20&metadata=0&ids%5B0%5D=id&checksums%5B0%5D=cc&originalChecksums%5B0%5D=occ&sort%5B0%5D=size",
		},
		{
			name:     "values are percent encoded",
			query:    NewImagesQuery().WithIDs("id with space&amp"),
			expected: "page=1&limit=20&metadata=0&ids%5B0%5D=id+with+space%26amp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.query.Encode())
		})
	}
}

func TestImagesQuery_ClampsBelowOne(t *testing.T) {
	q := NewImagesQuery().WithPage(0).WithLimit(0)

	assert.Equal(t, uint(1), q.Page())
	assert.Equal(t, uint(1), q.Limit())
}

func TestImagesQuery_ValueSemantics(t *testing.T) {
	base := NewImagesQuery().WithLimit(5)

	withIDs := base.WithIDs("id1")
	withMore := withIDs.WithIDs("id2", "id3")
	withSort := base.WithSort(SortEntry{Field: "size"})

	assert.Equal(t, "page=1&limit=5&metadata=0", base.Encode(), "base must be untouched")
	assert.Equal(t, "page=1&limit=5&metadata=0&ids%5B0%5D=id1", withIDs.Encode())
	assert.Equal(t, "page=1&limit=5&metadata=0&ids%5B0%5D=id2&ids%5B1%5D=id3", withMore.Encode(), "WithIDs replaces the filter")
	assert.Equal(t, "page=1&limit=5&metadata=0&sort%5B0%5D=size", withSort.Encode())
}

func TestImagesQuery_WithIDsCopiesInput(t *testing.T) {
	ids := []string{"id1", "id2"}
	q := NewImagesQuery().WithIDs(ids...)

	ids[0] = "mutated"

	assert.Contains(t, q.Encode(), "ids%5B0%5D=id1")
}
