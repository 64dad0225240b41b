// Package crypto exposes the minimal primitives used by stayreal.
//
// Contents
//
//   - Standard base64 helpers (B64, B64Bytes, UnB64)
//   - HMAC-SHA256 and hex key decoding (HMACSHA256, DecodeHexKey, EqualMAC)
//   - Short fingerprints of secrets for logging (Fingerprint)
//   - Best-effort memory wiping for sensitive byte slices (Zero)
//
// # Notes
//
// Nothing here knows about the device-signature framing; that lives in
// internal/protocol/signature.
package crypto
