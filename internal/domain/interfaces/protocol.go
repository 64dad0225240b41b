package interfaces

import domaintypes "stayreal/internal/domain/types"

// Signer computes the device signature for one request context.
type Signer interface {
	Sign(rc domaintypes.SignedRequestContext) (string, error)
}

// HeaderBuilder assembles the header set of the official mobile client.
type HeaderBuilder interface {
	Build(deviceID domaintypes.DeviceID) (domaintypes.Headers, error)
}
