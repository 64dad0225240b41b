package headers

// Header names sent on every authenticated request.
const (
	// Prefix is the common prefix of the vendor headers.
	Prefix = "bereal-"

	Platform       = Prefix + "platform"
	OSVersion      = Prefix + "os-version"
	AppVersion     = Prefix + "app-version"
	AppVersionCode = Prefix + "app-version-code"
	DeviceLanguage = Prefix + "device-language"
	AppLanguage    = Prefix + "app-language"
	DeviceID       = Prefix + "device-id"
	Timezone       = Prefix + "timezone"
	Signature      = Prefix + "signature"
	UserAgent      = "user-agent"
)

// Required lists every header name Build emits, in emission order.
var Required = []string{
	Platform,
	OSVersion,
	AppVersion,
	AppVersionCode,
	DeviceLanguage,
	AppLanguage,
	DeviceID,
	Timezone,
	Signature,
	UserAgent,
}
