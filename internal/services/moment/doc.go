// Package moment fetches the current posting window of the configured
// region.
package moment
