// Package clock provides the ClockAndLocale capability: the current time and
// the IANA name of the local timezone.
//
// System asks the operating system; Fixed returns preset values and is meant
// for tests and reproducible signatures.
package clock
