package types

import "fmt"

// ClientProfile carries every vendor constant the official client embeds.
// Keeping them in one value lets a rotated secret or version be swapped
// without touching signing or session logic.
type ClientProfile struct {
	Platform           string
	OSVersion          string
	UserAgentOSVersion string
	AppVersion         string
	AppBuild           string
	DeviceLanguage     string
	AppLanguage        string
	BundleID           string

	ClientID     string
	ClientSecret string
	HMACKeyHex   string

	TokenURL   string
	MomentsURL string
}

// DefaultClientProfile returns the profile of the iOS client build this
// module impersonates.
func DefaultClientProfile() ClientProfile {
	return ClientProfile{
		Platform:           "iOS",
		OSVersion:          "18.5",
		UserAgentOSVersion: "18.5.0",
		AppVersion:         "4.24.0",
		AppBuild:           "20523",
		DeviceLanguage:     "en",
		AppLanguage:        "en-US",
		BundleID:           "AlexisBarreyat.BeReal",

		ClientID:     "ios",
		ClientSecret: "962D357B-B134-4AB6-8F53-BEA2B7255420",
		HMACKeyHex:   "3536303337663461663232666236393630663363643031346532656337316233",

		TokenURL:   "https://auth-l7.bereal.com/token",
		MomentsURL: "https://mobile-l7.bereal.com/api/bereal/moments/last/",
	}
}

// UserAgent renders the user-agent string of the profile.
func (p ClientProfile) UserAgent() string {
	return fmt.Sprintf("BeReal/%s (%s; build:%s; iOS %s)",
		p.AppVersion, p.BundleID, p.AppBuild, p.UserAgentOSVersion)
}
