package headers_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"stayreal/internal/clock"
	"stayreal/internal/domain"
	"stayreal/internal/protocol/headers"
	"stayreal/internal/protocol/signature"
)

// tickingClock advances by one second on every Now call.
type tickingClock struct {
	at   time.Time
	zone string
}

func (c *tickingClock) Now() time.Time {
	c.at = c.at.Add(time.Second)
	return c.at
}

func (c *tickingClock) Timezone() (string, error) { return c.zone, nil }

func newBuilder(t *testing.T, clk domain.ClockAndLocale, profile domain.ClientProfile) *headers.Builder {
	t.Helper()
	g, err := signature.New(profile.HMACKeyHex)
	if err != nil {
		t.Fatalf("signature.New: %v", err)
	}
	return headers.New(profile, clk, g)
}

func TestBuildProducesAllHeaders(t *testing.T) {
	profile := domain.DefaultClientProfile()
	clk := clock.Fixed{At: time.Unix(1700000000, 0), Zone: "Europe/Paris"}
	b := newBuilder(t, clk, profile)

	h, err := b.Build("DEVICE-1")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	names := h.Names()
	if len(names) != len(headers.Required) {
		t.Fatalf("got %d headers, want %d", len(names), len(headers.Required))
	}
	for i, name := range headers.Required {
		if names[i] != name {
			t.Fatalf("header %d = %q, want %q", i, names[i], name)
		}
	}

	want := map[string]string{
		headers.Platform:       "iOS",
		headers.OSVersion:      "18.5",
		headers.AppVersion:     "4.24.0",
		headers.AppVersionCode: "20523",
		headers.DeviceLanguage: "en",
		headers.AppLanguage:    "en-US",
		headers.DeviceID:       "DEVICE-1",
		headers.Timezone:       "Europe/Paris",
		headers.UserAgent:      "BeReal/4.24.0 (AlexisBarreyat.BeReal; build:20523; iOS 18.5.0)",
	}
	for name, v := range want {
		if got := h.Get(name); got != v {
			t.Fatalf("%s = %q, want %q", name, got, v)
		}
	}

	g, _ := signature.New(profile.HMACKeyHex)
	if _, err := g.Verify(h.Get(headers.Signature), "DEVICE-1", "Europe/Paris", clk.At, time.Minute); err != nil {
		t.Fatalf("signature header does not verify: %v", err)
	}
}

func TestBuildSignsEachCall(t *testing.T) {
	clk := &tickingClock{at: time.Unix(1700000000, 0), zone: "UTC"}
	b := newBuilder(t, clk, domain.DefaultClientProfile())

	first, err := b.Build("DEV")
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Build("DEV")
	if err != nil {
		t.Fatal(err)
	}
	if first.Get(headers.Signature) == second.Get(headers.Signature) {
		t.Fatalf("signature reused across calls")
	}
}

func TestBuildPropagatesClockError(t *testing.T) {
	b := newBuilder(t, clock.Fixed{At: time.Unix(1, 0), Err: domain.ErrEnvironment}, domain.DefaultClientProfile())

	h, err := b.Build("DEV")
	if !errors.Is(err, domain.ErrEnvironment) {
		t.Fatalf("err = %v, want ErrEnvironment", err)
	}
	if h != nil {
		t.Fatalf("partial headers returned: %v", h)
	}
}

func TestBuildRejectsEmptyDevice(t *testing.T) {
	b := newBuilder(t, clock.Fixed{At: time.Unix(1, 0), Zone: "UTC"}, domain.DefaultClientProfile())
	if _, err := b.Build(""); !errors.Is(err, domain.ErrInvalidSignatureInput) {
		t.Fatalf("err = %v, want ErrInvalidSignatureInput", err)
	}
}

func TestBuildRejectsControlCharacters(t *testing.T) {
	b := newBuilder(t, clock.Fixed{At: time.Unix(1, 0), Zone: "UTC"}, domain.DefaultClientProfile())
	if _, err := b.Build("DEV\r\nX-Injected: 1"); !errors.Is(err, domain.ErrInvalidHeader) {
		t.Fatalf("err = %v, want ErrInvalidHeader", err)
	}
}

func TestHeadersApply(t *testing.T) {
	b := newBuilder(t, clock.Fixed{At: time.Unix(1, 0), Zone: "UTC"}, domain.DefaultClientProfile())
	h, err := b.Build("DEV")
	if err != nil {
		t.Fatal(err)
	}
	dst := http.Header{}
	h.Apply(dst)
	if dst.Get("Bereal-Device-Id") != "DEV" {
		t.Fatalf("device id not applied: %v", dst)
	}
	if dst.Get("User-Agent") == "" {
		t.Fatalf("user agent not applied")
	}
}
