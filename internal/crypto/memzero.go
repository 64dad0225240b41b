package crypto

import "crypto/subtle"

// Zero overwrites b with zeros. Used on derived keys once they are no longer needed.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}
