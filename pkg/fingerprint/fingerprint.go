// Package fingerprint computes content hashes for table rows.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	// absentTag marks a missing value so it never collides with an empty string.
	absentTag = 0x00
	// presentTag precedes every present value.
	presentTag = 0x01
	// separator closes each value.
	separator = 0x1f
)

// Row returns the SHA-256 of the row content. valid[i] tells whether
// values[i] is present; two rows share a fingerprint only if every cell
// matches in both value and presence.
func Row(values []string, valid []bool) string {
	h := sha256.New()

	for i, v := range values {
		if i < len(valid) && !valid[i] {
			h.Write([]byte{absentTag, separator})
			continue
		}

		h.Write([]byte{presentTag})
		h.Write([]byte(v))
		h.Write([]byte{separator})
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Content computes the SHA-256 hash of an arbitrary byte slice.
func Content(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}
