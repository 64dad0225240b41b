package mockauth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"stayreal/internal/clock"
	"stayreal/internal/domain"
	"stayreal/internal/mockauth"
	"stayreal/internal/protocol/headers"
	"stayreal/internal/protocol/signature"
	"stayreal/internal/remote"
	"stayreal/internal/services/session"
	"stayreal/internal/store"
)

type env struct {
	mock    *mockauth.Server
	client  *remote.HTTPClient
	builder *headers.Builder
	clock   clock.Fixed
}

func newEnv(t *testing.T) env {
	t.Helper()
	profile := domain.DefaultClientProfile()
	clk := clock.Fixed{At: time.Now(), Zone: "Europe/Paris"}

	mock, err := mockauth.New(profile, clk, nil)
	if err != nil {
		t.Fatalf("mockauth.New: %v", err)
	}
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)

	profile.TokenURL = srv.URL + "/token"
	profile.MomentsURL = srv.URL + "/api/bereal/moments/last/"
	g, err := signature.New(profile.HMACKeyHex)
	if err != nil {
		t.Fatal(err)
	}
	return env{
		mock:    mock,
		client:  remote.NewHTTP(profile, srv.Client(), remote.WithLimiter(rate.NewLimiter(rate.Inf, 1))),
		builder: headers.New(profile, clk, g),
		clock:   clk,
	}
}

func TestRefreshRotatesAgainstMock(t *testing.T) {
	e := newEnv(t)
	creds, err := e.mock.Login("DEVICE-1")
	if err != nil {
		t.Fatal(err)
	}
	st := store.NewCredentialsFileStore(t.TempDir())
	if err := st.SaveCredentials(creds); err != nil {
		t.Fatal(err)
	}
	svc := session.New(st, e.builder, e.client, e.clock, nil, nil)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	next, err := svc.GetCredentials()
	if err != nil {
		t.Fatal(err)
	}
	if next.DeviceID != "DEVICE-1" || next.RefreshToken == creds.RefreshToken || next.AccessToken == creds.AccessToken {
		t.Fatalf("tokens not rotated: %+v", next)
	}

	status, err := svc.Status()
	if err != nil {
		t.Fatal(err)
	}
	if status.ExpiresAt == nil || status.Expired {
		t.Fatalf("status = %+v", status)
	}

	// The previous refresh token is single use.
	h, err := e.builder.Build("DEVICE-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.client.ExchangeRefreshToken(context.Background(), h, creds.RefreshToken); !errors.Is(err, domain.ErrRefreshToken) {
		t.Fatalf("reused token: err = %v, want ErrRefreshToken", err)
	}
}

func TestTokenRejectsForeignDevice(t *testing.T) {
	e := newEnv(t)
	creds, err := e.mock.Login("DEVICE-1")
	if err != nil {
		t.Fatal(err)
	}
	h, err := e.builder.Build("DEVICE-2")
	if err != nil {
		t.Fatal(err)
	}
	_, err = e.client.ExchangeRefreshToken(context.Background(), h, creds.RefreshToken)
	var se *domain.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestTokenRejectsBadSignature(t *testing.T) {
	e := newEnv(t)
	creds, err := e.mock.Login("DEVICE-1")
	if err != nil {
		t.Fatal(err)
	}
	h, err := e.builder.Build("DEVICE-1")
	if err != nil {
		t.Fatal(err)
	}
	for i := range h {
		if h[i].Name == headers.Timezone {
			h[i].Value = "Asia/Tokyo"
		}
	}
	_, err = e.client.ExchangeRefreshToken(context.Background(), h, creds.RefreshToken)
	var se *domain.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
	if !strings.Contains(se.Body, "invalid_signature") {
		t.Fatalf("body = %q", se.Body)
	}
}

func TestTokenRequiresAllHeaders(t *testing.T) {
	e := newEnv(t)
	creds, err := e.mock.Login("DEVICE-1")
	if err != nil {
		t.Fatal(err)
	}
	h, err := e.builder.Build("DEVICE-1")
	if err != nil {
		t.Fatal(err)
	}
	var partial domain.Headers
	for _, hd := range h {
		if hd.Name != headers.AppVersionCode {
			partial = append(partial, hd)
		}
	}
	_, err = e.client.ExchangeRefreshToken(context.Background(), partial, creds.RefreshToken)
	var se *domain.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusBadRequest || !strings.Contains(se.Body, "missing_header") {
		t.Fatalf("err = %v, want missing_header", err)
	}
}

func TestMoments(t *testing.T) {
	e := newEnv(t)
	want := domain.Moment{ID: "m1", Region: "europe-west", StartDate: "s", EndDate: "e"}
	e.mock.SetMoment(want)

	got, err := e.client.FetchLastMoment(context.Background(), "europe-west")
	if err != nil {
		t.Fatalf("FetchLastMoment: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v", got)
	}

	synth, err := e.client.FetchLastMoment(context.Background(), "us-central")
	if err != nil {
		t.Fatalf("FetchLastMoment: %v", err)
	}
	if synth.Region != "us-central" || synth.ID == "" || synth.StartDate >= synth.EndDate {
		t.Fatalf("synthetic moment = %+v", synth)
	}
}

func TestImages(t *testing.T) {
	mock, err := mockauth.New(domain.DefaultClientProfile(), clock.NewSystem(), nil)
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(mock.Handler())
	defer srv.Close()
	c := remote.NewHTTP(domain.DefaultClientProfile(), srv.Client(), remote.WithLimiter(rate.NewLimiter(rate.Inf, 1)))

	b, err := c.DownloadImage(context.Background(), srv.URL+"/images/a.jpg")
	if err != nil {
		t.Fatalf("DownloadImage: %v", err)
	}
	if len(b) < 4 || b[0] != 0xff || b[1] != 0xd8 || b[len(b)-1] != 0xd9 {
		t.Fatalf("body = %x", b)
	}
	if _, err := c.DownloadImage(context.Background(), srv.URL+"/images/a.png"); !errors.Is(err, domain.ErrProtocol) {
		t.Fatalf("png: err = %v, want ErrProtocol", err)
	}
}
