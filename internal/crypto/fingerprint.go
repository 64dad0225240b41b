package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short hex fingerprint of a secret such as a token.
//
// It hashes with SHA-256 and truncates to 6 bytes (12 hex chars), enough to
// correlate log lines without revealing the secret. Empty input yields "".
func Fingerprint(secret string) string {
	if secret == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:6])
}
