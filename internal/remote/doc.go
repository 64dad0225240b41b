// Package remote provides the HTTP implementation of the domain.AuthClient,
// domain.MomentClient and domain.ImageClient interfaces.
//
// Supported operations:
//   - Exchanging a refresh token for a new token pair at the token endpoint.
//   - Fetching the last moment of a region.
//   - Downloading post images, on a separate client that by default refuses
//     private network targets.
//
// All requests accept a context for cancellation and deadlines, pass a
// client-side token bucket first, and go through an *http.Client that must
// carry a timeout. Transport failures wrap domain.ErrNetwork; unexpected
// statuses are returned as *domain.StatusError; bodies that do not match the
// expected schema wrap domain.ErrProtocol.
package remote
