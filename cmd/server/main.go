// Command server runs the mahjong room server: it loads configuration,
// wires the token issuer and room manager, and serves websocket
// connections until signaled to stop.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lamyinia/mahjong-room-server/internal/auth"
	"github.com/lamyinia/mahjong-room-server/internal/config"
	"github.com/lamyinia/mahjong-room-server/internal/logging"
	"github.com/lamyinia/mahjong-room-server/internal/room"
	"github.com/lamyinia/mahjong-room-server/internal/transport"
)

func main() {
	var configFile string

	root := &cobra.Command{
		Use:   "mahjong-room-server",
		Short: "Authoritative server for four-player Singapore mahjong",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configFile)
		},
	}
	root.Flags().StringVarP(&configFile, "config", "c", "", "path to a YAML config file (optional)")

	if err := root.Execute(); err != nil {
		logging.Error("fatal: %v", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile, func(reloaded *config.Config) {
		logging.SetLevel(reloaded.Log.Level)
		logging.Info("configuration reloaded")
	})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.SetLevel(cfg.Log.Level)

	issuer := auth.NewIssuer(cfg.Jwt.Secret, cfg.Jwt.Expiry)
	manager, err := room.NewManager(cfg, issuer)
	if err != nil {
		return fmt.Errorf("starting room manager: %w", err)
	}

	sweep := time.NewTicker(5 * time.Minute)
	defer sweep.Stop()
	go func() {
		for range sweep.C {
			manager.SweepEmptyRooms()
		}
	}()

	srv := transport.NewServer(manager)
	addr := fmt.Sprintf(":%d", cfg.Http.Port)

	errCh := make(chan error, 1)
	go func() {
		logging.With("addr", addr).Info("listening")
		errCh <- srv.Run(addr)
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logging.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	}
}
