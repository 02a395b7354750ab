package imagestoreclient

import (
	"fmt"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectHost_SingleHost(t *testing.T) {
	hosts := []string{"http://img.example.com"}

	identifiers := []string{"a", "abc123", "ffffffff", ""}
	for _, id := range identifiers {
		assert.Equal(t, "http://img.example.com", selectHost(hosts, id))
	}
}

func TestSelectHost_Deterministic(t *testing.T) {
	hosts := []string{
		"http://img1.example.com",
		"http://img2.example.com",
		"http://img3.example.com",
	}

	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("image-%d", i)
		first := selectHost(hosts, id)
		second := selectHost(hosts, id)
		require.Equal(t, first, second, "selection must be stable for %q", id)
	}
}

func TestSelectHost_MatchesChecksumModulo(t *testing.T) {
	hosts := []string{
		"http://img1.example.com",
		"http://img2.example.com",
		"http://img3.example.com",
	}

	id := "61da9892205a0d5077a353eb3487e8c8"
	expected := hosts[crc32.ChecksumIEEE([]byte(id))%3]

	assert.Equal(t, expected, selectHost(hosts, id))
}

func TestSelectHost_PoolOrderMatters(t *testing.T) {
	ordered := []string{"http://a", "http://b", "http://c"}
	reversed := []string{"http://c", "http://b", "http://a"}

	// Find an identifier that does not land on the middle host, so the
	// reordered pool must give a different answer.
	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("image-%d", i)
		if crc32.ChecksumIEEE([]byte(id))%3 != 1 {
			assert.NotEqual(t, selectHost(ordered, id), selectHost(reversed, id))
			return
		}
	}
	t.Fatal("no identifier off the middle host found")
}

func TestSelectHost_Distribution(t *testing.T) {
	hosts := []string{"http://a", "http://b", "http://c", "http://d"}

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		seen[selectHost(hosts, fmt.Sprintf("image-%d", i))] = true
	}

	for _, host := range hosts {
		assert.True(t, seen[host], "host %s never selected", host)
	}
}
