package types

import "fmt"

// Credentials is the session material persisted in credentials.json.
type Credentials struct {
	DeviceID     DeviceID `json:"deviceId"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

// Validate reports the first empty field, if any. A record that fails
// validation must never reach disk.
func (c Credentials) Validate() error {
	switch {
	case c.DeviceID == "":
		return fmt.Errorf("deviceId is empty")
	case c.AccessToken == "":
		return fmt.Errorf("accessToken is empty")
	case c.RefreshToken == "":
		return fmt.Errorf("refreshToken is empty")
	}
	return nil
}

// TokenPair is a validated answer from the token endpoint.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	// ExpiresIn is the advertised access-token lifetime in seconds, zero when absent.
	ExpiresIn int64
}
