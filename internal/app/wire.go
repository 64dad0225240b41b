package app

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"stayreal/internal/clock"
	"stayreal/internal/domain"
	"stayreal/internal/logging"
	"stayreal/internal/metrics"
	"stayreal/internal/protocol/headers"
	"stayreal/internal/protocol/signature"
	"stayreal/internal/remote"
	backupsvc "stayreal/internal/services/backup"
	balancessvc "stayreal/internal/services/balances"
	momentsvc "stayreal/internal/services/moment"
	postlogsvc "stayreal/internal/services/postlog"
	preferencessvc "stayreal/internal/services/preferences"
	sessionsvc "stayreal/internal/services/session"
	"stayreal/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config   Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Clock    domain.ClockAndLocale
	Headers  domain.HeaderBuilder
	Remote   *remote.HTTPClient
	HTTP     *http.Client

	Credentials *store.CredentialsFileStore
	Preferences domain.PreferencesService
	Session     domain.SessionService
	Moment      domain.MomentService
	Balances    domain.BalancesService
	Backup      domain.BackupService
	Posts       domain.PostLogService
}

// NewWire constructs the dependency graph from cfg. A nil logger discards
// all output.
func NewWire(cfg Config, logger *slog.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	// Metrics live in a private registry dumped to a textfile on exit.
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	clk := cfg.Clock
	if clk == nil {
		clk = clock.NewSystem()
	}

	// File-based stores
	credStore := store.NewCredentialsFileStore(cfg.Home)
	prefStore := store.NewPreferencesFileStore(cfg.Home)
	archive := store.NewBalancesDirStore()
	postStore := store.NewPostLogFileStore(cfg.Home)

	// Signing and headers
	signer, err := signature.New(cfg.Profile.HMACKeyHex)
	if err != nil {
		return nil, err
	}
	hb := headers.New(cfg.Profile, clk, signer)

	// Ensure an HTTP client with a timeout is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	// Image URLs come from post payloads and get the SSRF-guarded client
	// unless a local mock is in use.
	imageClient := cfg.ImageHTTP
	switch {
	case imageClient != nil:
	case cfg.AllowPrivateImageHosts:
		imageClient = httpClient
	default:
		imageClient = remote.NewImageHTTPClient(cfg.HTTPTimeout)
	}
	rc := remote.NewHTTP(cfg.Profile, httpClient,
		remote.WithLimiter(rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)),
		remote.WithLogger(logger.With(slog.String("component", "remote"))),
		remote.WithMetrics(collector),
		remote.WithImageClient(imageClient),
	)

	// High-level services
	sessionSvc := sessionsvc.New(credStore, hb, rc, clk,
		logger.With(slog.String("component", "session")), collector)
	prefSvc := preferencessvc.New(prefStore)
	momentSvc := momentsvc.New(prefStore, rc, logger.With(slog.String("component", "moment")))
	balancesSvc := balancessvc.New(prefStore, archive, clk, logger.With(slog.String("component", "balances")))
	backupSvc := backupsvc.New(credStore, prefStore, clk, logger.With(slog.String("component", "backup")))
	postSvc := postlogsvc.New(postStore, rc, clk, logger.With(slog.String("component", "posts")))

	return &Wire{
		Config:      cfg,
		Logger:      logger,
		Registry:    reg,
		Clock:       clk,
		Headers:     hb,
		Remote:      rc,
		HTTP:        httpClient,
		Credentials: credStore,
		Preferences: prefSvc,
		Session:     sessionSvc,
		Moment:      momentSvc,
		Balances:    balancesSvc,
		Backup:      backupSvc,
		Posts:       postSvc,
	}, nil
}

// FlushMetrics writes the registry to the configured textfile. It is a
// no-op when no textfile is configured.
func (w *Wire) FlushMetrics() error {
	if w.Config.MetricsTextfile == "" {
		return nil
	}
	return metrics.WriteTextfile(w.Config.MetricsTextfile, w.Registry)
}
