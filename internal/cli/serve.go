package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/evcraddock/wander/internal/catalog"
	"github.com/evcraddock/wander/internal/config"
	"github.com/evcraddock/wander/internal/email"
	"github.com/evcraddock/wander/internal/inquiry"
	"github.com/evcraddock/wander/internal/logging"
	"github.com/evcraddock/wander/internal/metrics"
	"github.com/evcraddock/wander/internal/tracing"
	"github.com/evcraddock/wander/internal/web"
	"github.com/evcraddock/wander/internal/wizard"
)

const sessionCleanupInterval = time.Hour

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long:  "Start the HTTP server for the travel site and trip wizard. Stops gracefully on SIGINT or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	cmd.Flags().Int("port", 8080, "port to listen on")
	cmd.Flags().String("api-url", "", "catalog API base URL")
	cmd.Flags().Bool("dev", false, "development mode (text logs at debug level)")

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logging.Setup(cfg.DevMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("shutting down tracing", "error", err)
		}
	}()

	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(database)

	m := metrics.New()
	catalogOpts := []catalog.Option{catalog.WithMetrics(m)}

	var sessions wizard.Store
	if cfg.Redis.Enabled() {
		rdb, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()

		sessions = wizard.NewRedisStore(rdb, wizard.WithTTL(cfg.SessionTTL))
		if cfg.CacheTTL > 0 {
			catalogOpts = append(catalogOpts, catalog.WithCache(catalog.NewRedisCache(rdb, "wander:"), cfg.CacheTTL))
		}
		slog.Info("using redis", "addr", cfg.Redis.Addr)
	} else {
		store := wizard.NewSQLStore(database, cfg.SessionTTL)
		go cleanupSessions(ctx, store)
		sessions = store
	}

	notifier := email.NewNotifier(cfg.SMTP, cfg.AgencyEmail)
	if notifier == nil {
		slog.Info("email notifications disabled")
	}

	srv, err := web.NewServer(web.Options{
		Catalog:       catalog.NewClient(cfg.APIURL, catalogOpts...),
		Sessions:      sessions,
		Inquiries:     inquiry.NewRepository(database),
		Plans:         inquiry.NewPlanRepository(database),
		Notifier:      notifier,
		Metrics:       m,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: strings.HasPrefix(cfg.BaseURL, "https://"),
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), startupMessage(cfg))
	return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Port))
}

// startupMessage names the address actually listened on, plus the public
// base URL when it points elsewhere.
func startupMessage(cfg *config.Config) string {
	local := fmt.Sprintf("http://localhost:%d", cfg.Port)
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" || base == local {
		return "Starting web UI on " + local
	}
	return fmt.Sprintf("Starting web UI on %s (public URL %s)", local, base)
}

func connectRedis(ctx context.Context, rc config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", rc.Addr, err)
	}
	return rdb, nil
}

// cleanupSessions deletes expired sqlite sessions until ctx is done.
func cleanupSessions(ctx context.Context, store *wizard.SQLStore) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Cleanup(ctx)
			if err != nil {
				slog.Warn("cleaning up wizard sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("removed expired wizard sessions", "count", n)
			}
		}
	}
}
