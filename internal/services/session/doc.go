// Package session keeps the stored session usable.
//
// It owns the credentials record, exchanges the refresh token for a new
// token pair through the signed token endpoint, and reports the access
// token expiry for display. A refresh either replaces both tokens on disk
// or leaves the record untouched.
package session
