package signature

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"stayreal/internal/crypto"
	"stayreal/internal/domain"
)

// version is the framing version the server expects in front of the MAC.
const version = "1"

// Generator signs request contexts with one fixed key.
type Generator struct {
	key []byte
}

// New decodes keyHex and returns a Generator. A key that fails to decode is
// a build defect and wraps domain.ErrConfiguration.
func New(keyHex string) (*Generator, error) {
	key, err := crypto.DecodeHexKey(keyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: hmac key: %v", domain.ErrConfiguration, err)
	}
	return &Generator{key: key}, nil
}

// Sign returns the signature for rc.
func (g *Generator) Sign(rc domain.SignedRequestContext) (string, error) {
	if rc.DeviceID == "" {
		return "", fmt.Errorf("%w: empty device id", domain.ErrInvalidSignatureInput)
	}
	if rc.Timezone == "" {
		return "", fmt.Errorf("%w: empty timezone", domain.ErrInvalidSignatureInput)
	}
	ts := strconv.FormatInt(rc.Timestamp, 10)
	return crypto.B64(frame(ts, g.mac(rc.DeviceID.String(), rc.Timezone, ts))), nil
}

// SignNow builds the request context from clk and signs it.
func (g *Generator) SignNow(
	deviceID domain.DeviceID,
	clk domain.ClockAndLocale,
) (string, domain.SignedRequestContext, error) {
	tz, err := clk.Timezone()
	if err != nil {
		return "", domain.SignedRequestContext{}, err
	}
	rc := domain.SignedRequestContext{
		DeviceID:  deviceID,
		Timezone:  tz,
		Timestamp: clk.Now().Unix(),
	}
	sig, err := g.Sign(rc)
	if err != nil {
		return "", domain.SignedRequestContext{}, err
	}
	return sig, rc, nil
}

// Verify checks sig against deviceID and timezone. The embedded timestamp
// must lie within skew of now; a zero skew disables the window check.
// It returns the embedded timestamp on success.
func (g *Generator) Verify(
	sig string,
	deviceID domain.DeviceID,
	timezone string,
	now time.Time,
	skew time.Duration,
) (int64, error) {
	raw, err := crypto.UnB64(sig)
	if err != nil {
		return 0, fmt.Errorf("%w: not base64", domain.ErrInvalidSignature)
	}
	ts, mac, err := unframe(raw)
	if err != nil {
		return 0, err
	}
	at, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad timestamp %q", domain.ErrInvalidSignature, ts)
	}
	if skew > 0 {
		d := now.Sub(time.Unix(at, 0))
		if d > skew || d < -skew {
			return 0, fmt.Errorf("%w: timestamp outside window", domain.ErrInvalidSignature)
		}
	}
	if !crypto.EqualMAC(mac, g.mac(deviceID.String(), timezone, ts)) {
		return 0, fmt.Errorf("%w: mac mismatch", domain.ErrInvalidSignature)
	}
	return at, nil
}

func (g *Generator) mac(deviceID, timezone, ts string) []byte {
	msg := make([]byte, 0, len(deviceID)+len(timezone)+len(ts))
	msg = append(msg, deviceID...)
	msg = append(msg, timezone...)
	msg = append(msg, ts...)
	return crypto.HMACSHA256(g.key, crypto.B64Bytes(msg))
}

func frame(ts string, mac []byte) []byte {
	out := make([]byte, 0, len(version)+len(ts)+2+len(mac))
	out = append(out, version...)
	out = append(out, ':')
	out = append(out, ts...)
	out = append(out, ':')
	return append(out, mac...)
}

func unframe(raw []byte) (ts string, mac []byte, err error) {
	prefix := []byte(version + ":")
	if !bytes.HasPrefix(raw, prefix) {
		return "", nil, fmt.Errorf("%w: unknown framing", domain.ErrInvalidSignature)
	}
	rest := raw[len(prefix):]
	i := bytes.IndexByte(rest, ':')
	if i <= 0 {
		return "", nil, fmt.Errorf("%w: missing timestamp", domain.ErrInvalidSignature)
	}
	return string(rest[:i]), rest[i+1:], nil
}

// Compile-time assertion that Generator implements domain.Signer.
var _ domain.Signer = (*Generator)(nil)
