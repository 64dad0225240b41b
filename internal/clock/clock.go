package clock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stayreal/internal/domain"
)

const (
	defaultLocaltime    = "/etc/localtime"
	defaultTimezoneFile = "/etc/timezone"
	zoneinfoMarker      = "zoneinfo/"
)

// Leap-second and POSIX variants of the zone database live under these
// subtrees and share the canonical names.
var zoneinfoVariants = []string{"posix/", "right/"}

// System reads time and timezone from the host.
//
// The timezone is resolved, in order, from the TZ variable, the target of
// the /etc/localtime symlink, /etc/timezone, and finally the name Go
// assigned to time.Local.
type System struct {
	// Overridable for tests; zero values select the host defaults.
	Getenv       func(string) string
	Localtime    string
	TimezoneFile string
}

// NewSystem returns a System bound to the host.
func NewSystem() *System { return &System{} }

// Now returns the current wall-clock time.
func (s *System) Now() time.Time { return time.Now() }

// Timezone returns the IANA name of the local timezone, e.g. "Europe/Paris".
func (s *System) Timezone() (string, error) {
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if tz, ok := fromTZ(getenv("TZ")); ok {
		return tz, nil
	}

	localtime := s.Localtime
	if localtime == "" {
		localtime = defaultLocaltime
	}
	if target, err := os.Readlink(localtime); err == nil {
		if tz, ok := zoneFromPath(target); ok {
			return tz, nil
		}
	}

	tzFile := s.TimezoneFile
	if tzFile == "" {
		tzFile = defaultTimezoneFile
	}
	if b, err := os.ReadFile(tzFile); err == nil {
		if tz := strings.TrimSpace(string(b)); tz != "" {
			return tz, nil
		}
	}

	if name := time.Local.String(); name != "" && name != "Local" {
		return name, nil
	}
	return "", fmt.Errorf("%w: cannot determine local timezone", domain.ErrEnvironment)
}

func fromTZ(v string) (string, bool) {
	v = strings.TrimPrefix(strings.TrimSpace(v), ":")
	if v == "" {
		return "", false
	}
	if filepath.IsAbs(v) {
		return zoneFromPath(v)
	}
	return v, true
}

func zoneFromPath(p string) (string, bool) {
	p = filepath.ToSlash(p)
	i := strings.LastIndex(p, zoneinfoMarker)
	if i < 0 {
		return "", false
	}
	tz := p[i+len(zoneinfoMarker):]
	for _, v := range zoneinfoVariants {
		tz = strings.TrimPrefix(tz, v)
	}
	return tz, tz != ""
}

// Fixed is a ClockAndLocale frozen at At in Zone. A non-nil Err is returned
// from Timezone instead, to exercise environment failures.
type Fixed struct {
	At   time.Time
	Zone string
	Err  error
}

// Now returns f.At.
func (f Fixed) Now() time.Time { return f.At }

// Timezone returns f.Zone or f.Err.
func (f Fixed) Timezone() (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	if f.Zone == "" {
		return "", fmt.Errorf("%w: no zone configured", domain.ErrEnvironment)
	}
	return f.Zone, nil
}

// Compile-time assertions.
var (
	_ domain.ClockAndLocale = (*System)(nil)
	_ domain.ClockAndLocale = Fixed{}
)
