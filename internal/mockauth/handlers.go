package mockauth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"stayreal/internal/domain"
	"stayreal/internal/protocol/headers"
)

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	GrantType    string `json:"grant_type"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	for _, name := range headers.Required {
		if r.Header.Get(name) == "" {
			writeError(w, http.StatusBadRequest, "missing_header", name)
			return
		}
	}
	deviceID := domain.DeviceID(r.Header.Get(headers.DeviceID))
	tz := r.Header.Get(headers.Timezone)
	if _, err := s.verifier.Verify(r.Header.Get(headers.Signature), deviceID, tz, s.clock.Now(), s.skew); err != nil {
		s.logger.Warn("signature rejected", slog.String("device_id", deviceID.String()), slog.String("error", err.Error()))
		writeError(w, http.StatusUnauthorized, "invalid_signature", err.Error())
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "body is not JSON")
		return
	}
	if req.ClientID != s.profile.ClientID || req.ClientSecret != s.profile.ClientSecret {
		writeError(w, http.StatusBadRequest, "invalid_client", "unknown client")
		return
	}
	if req.GrantType != "refresh_token" {
		writeError(w, http.StatusBadRequest, "unsupported_grant_type", req.GrantType)
		return
	}

	s.mu.Lock()
	owner, ok := s.sessions[req.RefreshToken]
	if !ok || owner != deviceID {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "invalid_grant", "refresh token is unknown or already used")
		return
	}
	delete(s.sessions, req.RefreshToken)
	pair, err := s.mintLocked(deviceID)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", "mint failed")
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    "Bearer",
	})
}

func (s *Server) handleMoment(w http.ResponseWriter, r *http.Request) {
	region := domain.Region(chi.URLParam(r, "region"))

	s.mu.Lock()
	m, ok := s.moments[region]
	s.mu.Unlock()
	if !ok {
		start := s.clock.Now().UTC().Truncate(time.Hour)
		m = domain.Moment{
			ID:        uuid.NewString(),
			Region:    region,
			StartDate: start.Format(dateLayout),
			EndDate:   start.Add(momentWindow).Format(dateLayout),
		}
	}
	writeJSON(w, http.StatusOK, m)
}

// handleImage serves a small JPEG-framed body derived from the file name.
// Only .jpg names exist.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !strings.HasSuffix(name, ".jpg") {
		writeError(w, http.StatusNotFound, "not_found", "no such image")
		return
	}
	body := append([]byte{0xff, 0xd8}, name...)
	body = append(body, 0xff, 0xd9)
	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = w.Write(body)
}
