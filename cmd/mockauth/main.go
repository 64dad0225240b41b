package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stayreal/internal/clock"
	"stayreal/internal/domain"
	"stayreal/internal/logging"
	"stayreal/internal/mockauth"
)

func main() {
	var (
		addr     string
		deviceID string
		logLevel string
		skew     time.Duration
	)
	cmd := &cobra.Command{
		Use:          "mockauth",
		Short:        "In-memory mock of the token and moment endpoints",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(logLevel, os.Stderr)

			srv, err := mockauth.New(domain.DefaultClientProfile(), clock.NewSystem(), logger)
			if err != nil {
				return err
			}
			srv.SetSkew(skew)

			if deviceID == "" {
				deviceID = domain.NewDeviceID().String()
			}
			creds, err := srv.Login(domain.DeviceID(deviceID))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(creds); err != nil {
				return err
			}

			hs := &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() { errCh <- hs.ListenAndServe() }()
			logger.Info("mockauth listening", slog.String("addr", addr))

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := hs.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&deviceID, "device-id", "", "device id of the seeded session")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")
	cmd.Flags().DurationVar(&skew, "skew", mockauth.DefaultSkew, "accepted signature clock skew (0 disables)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
