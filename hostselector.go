package imagestoreclient

import "hash/crc32"

// selectHost maps an image identifier to one of the configured base URLs.
// Deployments shard storage by identifier, so the mapping must be stable
// across calls and across processes: CRC32 of the identifier reduced modulo
// the pool size. Pool order matters and is never reordered.
func selectHost(hosts []string, imageIdentifier string) string {
	if len(hosts) == 1 {
		return hosts[0]
	}
	index := crc32.ChecksumIEEE([]byte(imageIdentifier)) % uint32(len(hosts))
	return hosts[index]
}
