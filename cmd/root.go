package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shuv1824/packlist/internal/config"
	"github.com/shuv1824/packlist/internal/outfit"
	"github.com/shuv1824/packlist/internal/services/forecast"
	"github.com/shuv1824/packlist/internal/services/trip"
	"github.com/shuv1824/packlist/internal/storage"
	"github.com/shuv1824/packlist/internal/utils/geodata"
)

var (
	cfgFile string
	v       = viper.New()
	cfg     *config.AppConfig
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "packlist",
		Short: "Weather-aware packing lists for your next trip",
		Long: `packlist looks up the daily forecast for a destination and tells you
which clothing and accessories to pack, merged across the whole trip.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/packlist/config.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "log format (console, json)")
	root.PersistentFlags().String("rules", "", "YAML rule file (default: built-in tables)")

	_ = v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log.format", root.PersistentFlags().Lookup("log-format"))
	_ = v.BindPFlag("rules.file", root.PersistentFlags().Lookup("rules"))

	root.AddCommand(planCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(historyCmd())
	root.AddCommand(rulesCmd())

	return root
}

func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func initConfig(_ *cobra.Command, _ []string) error {
	if err := config.Init(v, cfgFile); err != nil {
		return err
	}

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded

	slog.SetDefault(setupLogger(cfg))
	return nil
}

func setupLogger(c *config.AppConfig) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: c.LogLevel,
	}

	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

// app holds the services shared by every command.
type app struct {
	cache  *forecast.CachedService
	store  *storage.SQLiteStorage
	trips  *trip.TripService
}

// newApp wires the services. The store is opened only when withStore is set.
func newApp(ctx context.Context, withStore bool) (*app, error) {
	tables, err := outfit.LoadTables(cfg.RulesFile)
	if err != nil {
		return nil, err
	}

	places, err := geodata.Load(cfg.PlacesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load places: %w", err)
	}
	slog.Debug("loaded places", "count", places.Len())

	service := forecast.NewService(places, forecast.Config{
		HTTPClient:   &http.Client{Timeout: cfg.HTTPTimeout},
		ForecastURL:  cfg.ForecastURL,
		GeocodingURL: cfg.GeocodingURL,
		Backoff:      forecast.DefaultBackoff(cfg.MaxRetries),
	})
	cache := forecast.NewCachedService(service, cfg.CacheTTL)

	a := &app{cache: cache}

	var store trip.Store
	if withStore {
		a.store, err = storage.NewSQLiteStorage(ctx, cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		store = a.store
	}

	a.trips = trip.NewTripService(cache, outfit.NewClassifier(tables), store)
	return a, nil
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			slog.Warn("failed to close storage", "error", err)
		}
	}
}
