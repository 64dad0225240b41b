package crypto

import "encoding/base64"

// B64 returns standard base64 encoding (with padding, without newlines).
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// B64Bytes is B64 returning bytes, for feeding encoded text straight into a MAC.
func B64Bytes(b []byte) []byte {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(b)))
	base64.StdEncoding.Encode(out, b)
	return out
}

// UnB64 decodes standard base64.
func UnB64(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }
