package interfaces

import "time"

// ClockAndLocale supplies the current time and the local IANA timezone name.
type ClockAndLocale interface {
	Now() time.Time
	Timezone() (string, error)
}
