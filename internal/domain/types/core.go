package types

// DeviceID is the opaque identifier of one install. It is stable for the
// lifetime of a credential and never rotated by this module.
type DeviceID string

// String returns the string form of the device identifier.
func (id DeviceID) String() string { return string(id) }

// Region is the geographic partition the remote service schedules moments in.
type Region string

// String returns the string form of the region.
func (r Region) String() string { return string(r) }
