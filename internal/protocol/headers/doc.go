// Package headers assembles the request header set of the official mobile
// client, embedding a freshly computed device signature on every call.
package headers
