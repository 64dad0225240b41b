// Package mockauth is an in-memory stand-in for the remote token and moment
// endpoints, used during development and in end-to-end tests.
//
// HTTP API
//
//	POST /token
//	    Exchange a refresh token. The request must carry the full signed
//	    header set; the signature is verified against the device id and
//	    timezone headers. Refresh tokens are single use and rotate on every
//	    successful exchange, which answers 201.
//
//	GET /api/bereal/moments/last/{region}
//	    Return the configured moment of {region}, or a synthetic one opened
//	    at the start of the current hour.
//
//	GET /images/{name}
//	    Return a placeholder JPEG body for any name ending in .jpg, 404
//	    otherwise. Stands in for the image CDN when saving posts.
//
// All state is held in memory and lost on process exit.
package mockauth
