package types

// Preferences holds optional user configuration persisted in preferences.json.
// A missing file is equivalent to the zero value.
type Preferences struct {
	Region                 Region   `json:"region"`
	BalancesDownloadFolder *string  `json:"balancesDownloadFolder,omitempty"`
	BalancesPeopleIDs      []string `json:"balancesPeopleIds"`
}

// DefaultPreferences returns the all-default preferences with a non-nil,
// empty people list so it serialises as [].
func DefaultPreferences() Preferences {
	return Preferences{BalancesPeopleIDs: []string{}}
}

// BalancesSettings is the balances view of Preferences.
type BalancesSettings struct {
	Folder    string   `json:"folder"`
	PeopleIDs []string `json:"peopleIds"`
}

// BalanceRecord is one downloaded balance file.
type BalanceRecord struct {
	PersonID  string `json:"personId"`
	Balance   string `json:"balance"`
	Timestamp int64  `json:"timestamp"`
}
