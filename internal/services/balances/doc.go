// Package balances manages the balance records of the people listed in
// the preferences.
//
// Settings (download folder and people ids) live in the preferences file.
// Downloading writes one record per person into the folder; the record
// content is a placeholder until a balances endpoint is available.
package balances
