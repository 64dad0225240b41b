package types

import (
	"net/http"
	"strings"
	"time"
)

// SignedRequestContext is the per-request input of the device signature.
// It lives for a single outbound request and is never persisted.
type SignedRequestContext struct {
	DeviceID  DeviceID
	Timezone  string
	Timestamp int64
}

// Header is one outbound request header.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered header set.
type Headers []Header

// Get returns the value of the first header matching name, case-insensitively.
func (h Headers) Get(name string) string {
	for _, hd := range h {
		if strings.EqualFold(hd.Name, name) {
			return hd.Value
		}
	}
	return ""
}

// Names lists the header names in order.
func (h Headers) Names() []string {
	out := make([]string, 0, len(h))
	for _, hd := range h {
		out = append(out, hd.Name)
	}
	return out
}

// Apply sets every header on dst, replacing existing values.
func (h Headers) Apply(dst http.Header) {
	for _, hd := range h {
		dst.Set(hd.Name, hd.Value)
	}
}

// TokenStatus is an informational view of the stored access token.
type TokenStatus struct {
	DeviceID DeviceID
	// ExpiresAt is nil when the access token carries no readable expiry.
	ExpiresAt *time.Time
	Expired   bool
}
