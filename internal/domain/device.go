package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewDeviceID mints a fresh install identifier in the upper-case UUID form
// the official iOS client uses for identifierForVendor.
func NewDeviceID() DeviceID {
	return DeviceID(strings.ToUpper(uuid.NewString()))
}
