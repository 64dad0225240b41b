package headers

import (
	"fmt"

	"golang.org/x/net/http/httpguts"

	"stayreal/internal/domain"
)

// Builder produces the header set for one device.
type Builder struct {
	profile domain.ClientProfile
	clock   domain.ClockAndLocale
	signer  domain.Signer
}

// New returns a Builder using profile constants, clk for time and timezone,
// and signer for the device signature.
func New(profile domain.ClientProfile, clk domain.ClockAndLocale, signer domain.Signer) *Builder {
	return &Builder{profile: profile, clock: clk, signer: signer}
}

// Build returns the full header set for deviceID.
//
// The signature is computed for the current timestamp on each call and never
// reused. If the timezone lookup or the signature fails, no headers are
// returned and the error of the failing step is passed through.
func (b *Builder) Build(deviceID domain.DeviceID) (domain.Headers, error) {
	tz, err := b.clock.Timezone()
	if err != nil {
		return nil, err
	}
	sig, err := b.signer.Sign(domain.SignedRequestContext{
		DeviceID:  deviceID,
		Timezone:  tz,
		Timestamp: b.clock.Now().Unix(),
	})
	if err != nil {
		return nil, err
	}

	p := b.profile
	h := domain.Headers{
		{Name: Platform, Value: p.Platform},
		{Name: OSVersion, Value: p.OSVersion},
		{Name: AppVersion, Value: p.AppVersion},
		{Name: AppVersionCode, Value: p.AppBuild},
		{Name: DeviceLanguage, Value: p.DeviceLanguage},
		{Name: AppLanguage, Value: p.AppLanguage},
		{Name: DeviceID, Value: deviceID.String()},
		{Name: Timezone, Value: tz},
		{Name: Signature, Value: sig},
		{Name: UserAgent, Value: p.UserAgent()},
	}
	if err := validate(h); err != nil {
		return nil, err
	}
	return h, nil
}

func validate(h domain.Headers) error {
	for _, hd := range h {
		if !httpguts.ValidHeaderFieldName(hd.Name) {
			return fmt.Errorf("%w: name %q", domain.ErrInvalidHeader, hd.Name)
		}
		if !httpguts.ValidHeaderFieldValue(hd.Value) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidHeader, hd.Name)
		}
	}
	return nil
}

// Compile-time assertion that Builder implements domain.HeaderBuilder.
var _ domain.HeaderBuilder = (*Builder)(nil)
