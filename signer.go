package imagestoreclient

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// timestampFormat is the wire format for signature timestamps: UTC with
// second precision. Servers re-derive the signature from this exact string.
const timestampFormat = "2006-01-02T15:04:05Z"

// signer computes authentication tokens for mutating requests. The signature
// is a pure function of its inputs so the server can recompute and verify it.
type signer struct {
	publicKey  string
	privateKey string
}

// token returns the lowercase hex HMAC-SHA256 over
// "method|url|publicKey|timestamp" keyed with the private key. The
// concatenation order is part of the wire protocol.
func (s signer) token(method, url, timestamp string) string {
	mac := hmac.New(sha256.New, []byte(s.privateKey))
	mac.Write([]byte(method + "|" + url + "|" + s.publicKey + "|" + timestamp))
	return hex.EncodeToString(mac.Sum(nil))
}

// signURL appends signature and timestamp query parameters to an already
// fully assembled URL. Existing query parameters stay in place; the
// signature covers everything before it.
func (s signer) signURL(method, fullURL string, at time.Time) string {
	timestamp := at.UTC().Format(timestampFormat)
	signature := s.token(method, fullURL, timestamp)

	separator := "?"
	if strings.Contains(fullURL, "?") {
		separator = "&"
	}
	return fullURL + separator + "signature=" + signature + "&timestamp=" + escapeQueryValue(timestamp)
}
