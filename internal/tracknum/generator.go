package tracknum

import (
	"crypto/md5"

	"github.com/RaikyD/tracking-number-service/internal/domain"
)

// Generate derives a name-based (version 3) identifier from the canonical
// bytes: the MD5 digest of name with the version and variant bits fixed.
//
// Unlike uuid.NewMD5 there is no namespace prefix; the digest covers name
// alone.
func Generate(name []byte) domain.TrackingNumber {
	sum := md5.Sum(name)
	sum[6] = (sum[6] & 0x0f) | 0x30 // version 3
	sum[8] = (sum[8] & 0x3f) | 0x80 // RFC 4122 variant
	return domain.TrackingNumber(sum)
}

// For is Canonicalize followed by Generate.
func For(attrs domain.OrderAttributes) domain.TrackingNumber {
	return Generate(Canonicalize(attrs))
}
