// Package signature computes and verifies the per-request device signature.
//
// # Algorithm
//
//	msg  = deviceID || timezone || decimal(timestamp)
//	mac  = HMAC-SHA256(key, base64(msg))
//	sig  = base64("1:" || decimal(timestamp) || ":" || mac)
//
// base64 is the standard alphabet with padding. The key is a fixed
// pre-shared value decoded from hex. Output is a pure function of the
// inputs and the key, so fixed inputs always give byte-identical output.
package signature
