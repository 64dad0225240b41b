package mockauth

import (
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"stayreal/internal/domain"
	"stayreal/internal/logging"
	"stayreal/internal/protocol/signature"
)

const (
	// DefaultSkew is the accepted distance between the signed timestamp and
	// the server clock.
	DefaultSkew = 5 * time.Minute
	// AccessTokenTTL is the lifetime of minted access tokens.
	AccessTokenTTL = time.Hour

	momentWindow = 2 * time.Minute
	dateLayout   = "2006-01-02T15:04:05.000Z"
)

// Server holds issued sessions and configured moments.
type Server struct {
	profile  domain.ClientProfile
	verifier *signature.Generator
	clock    domain.ClockAndLocale
	skew     time.Duration
	logger   *slog.Logger
	jwtKey   []byte

	mu       sync.Mutex
	sessions map[string]domain.DeviceID // refresh token -> device
	moments  map[domain.Region]domain.Moment
}

// New returns a Server accepting requests signed for profile.
func New(profile domain.ClientProfile, clk domain.ClockAndLocale, logger *slog.Logger) (*Server, error) {
	verifier, err := signature.New(profile.HMACKeyHex)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return &Server{
		profile:  profile,
		verifier: verifier,
		clock:    clk,
		skew:     DefaultSkew,
		logger:   logger,
		jwtKey:   key,
		sessions: make(map[string]domain.DeviceID),
		moments:  make(map[domain.Region]domain.Moment),
	}, nil
}

// SetSkew changes the accepted timestamp window. Zero disables the check.
func (s *Server) SetSkew(d time.Duration) { s.skew = d }

// Login issues a fresh session for deviceID, as a successful login would.
func (s *Server) Login(deviceID domain.DeviceID) (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pair, err := s.mintLocked(deviceID)
	if err != nil {
		return domain.Credentials{}, err
	}
	return domain.Credentials{
		DeviceID:     deviceID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// SetMoment configures the moment returned for m.Region.
func (s *Server) SetMoment(m domain.Moment) {
	s.mu.Lock()
	s.moments[m.Region] = m
	s.mu.Unlock()
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	r.Post("/token", s.handleToken)
	r.Get("/api/bereal/moments/last/{region}", s.handleMoment)
	r.Get("/images/{name}", s.handleImage)
	return r
}

// mintLocked creates a token pair for deviceID. Callers hold s.mu.
func (s *Server) mintLocked(deviceID domain.DeviceID) (domain.TokenPair, error) {
	now := s.clock.Now()
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   deviceID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		ID:        uuid.NewString(),
	}).SignedString(s.jwtKey)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh := uuid.NewString()
	s.sessions[refresh] = deviceID
	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(AccessTokenTTL / time.Second),
	}, nil
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, map[string]string{"error": code, "error_description": detail})
}
