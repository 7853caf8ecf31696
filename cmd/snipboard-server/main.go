// Package main provides the entry point for snipboard-server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/yndnr/snipboard/internal/core/domain"
	"github.com/yndnr/snipboard/internal/core/service"
	"github.com/yndnr/snipboard/internal/infra/buildinfo"
	"github.com/yndnr/snipboard/internal/infra/confloader"
	"github.com/yndnr/snipboard/internal/infra/shutdown"
	"github.com/yndnr/snipboard/internal/infra/tlsroots"
	"github.com/yndnr/snipboard/internal/server/config"
	"github.com/yndnr/snipboard/internal/server/httpserver"
	"github.com/yndnr/snipboard/internal/server/localserver"
	"github.com/yndnr/snipboard/internal/storage"
	"github.com/yndnr/snipboard/internal/storage/memory"
	"github.com/yndnr/snipboard/internal/storage/persist"
	"github.com/yndnr/snipboard/internal/telemetry/logger"
	"github.com/yndnr/snipboard/internal/telemetry/metric"
	"github.com/yndnr/snipboard/pkg/crypto/adaptive"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
		addr        = flag.String("addr", "", "HTTP listen address (overrides server.http.addr)")
		dataDir     = flag.String("data-dir", "", "Storage directory (overrides storage.data_dir)")
		logLevel    = flag.String("log-level", "", "Log level (overrides log.level)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("snipboard-server", buildinfo.String())
		return nil
	}

	overrides := flagOverrides(map[string]string{
		"server.http.addr": *addr,
		"storage.data_dir": *dataDir,
		"log.level":        *logLevel,
	})

	cfg, err := loadConfig(*configFile, overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, slogLogger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting snipboard-server",
		"version", buildinfo.Get().Version,
		"config", *configFile)
	log.Debug("effective configuration", "config", config.Sanitize(cfg))

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	registry := metric.NewRegistry()

	kv, err := initStorage(cfg, slogLogger, registry)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	controller, err := initServices(ctx, cfg, kv, log, registry)
	if err != nil {
		_ = kv.Close()
		return fmt.Errorf("init services: %w", err)
	}

	router, err := httpserver.NewRouter(&httpserver.RouterConfig{
		Controller: controller,
		Logger:     slogLogger,
		Metrics:    registry,
		Ready: func(ctx context.Context) error {
			_, err := kv.Stats(ctx)
			return err
		},
		CORSAllowedOrigins: cfg.Server.HTTP.CORSOrigins,
		RateLimit:          cfg.Server.HTTP.RateLimit,
		RateBurst:          cfg.Server.HTTP.RateBurst,
		MaxUploadBytes:     cfg.Upload.MaxBytes,
		EnableAudit:        true,
	})
	if err != nil {
		_ = kv.Close()
		return fmt.Errorf("init router: %w", err)
	}

	shutdownHandler := shutdown.NewHandler(shutdownTimeout, shutdown.WithLogger(slogLogger))

	// Hooks run in reverse order: listeners stop before storage closes.
	shutdownHandler.OnShutdown("storage", func(context.Context) error {
		log.Info("closing storage engine")
		return kv.Close()
	})

	httpOpts := httpserver.Options{
		Addr:         cfg.Server.HTTP.Addr,
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
	}
	if cfg.Server.HTTP.TLSCertFile != "" {
		certs, err := tlsroots.NewWatcher(cfg.Server.HTTP.TLSCertFile, cfg.Server.HTTP.TLSKeyFile,
			tlsroots.WithLogger(slogLogger))
		if err != nil {
			_ = kv.Close()
			return fmt.Errorf("load tls certificate: %w", err)
		}
		httpOpts.TLSConfig = certs.ServerConfig()
		go func() {
			if err := certs.Run(ctx); err != nil {
				log.Error("certificate watcher stopped", "error", err)
			}
		}()
	}

	httpServer := httpserver.New(httpOpts, router)
	shutdownHandler.OnShutdown("http", func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	go func() {
		log.Info("HTTP server listening",
			"addr", cfg.Server.HTTP.Addr,
			"tls", httpOpts.TLSConfig != nil)
		if err := httpServer.ListenAndServe(); err != nil {
			cancel(fmt.Errorf("http server: %w", err))
		}
	}()

	if path := cfg.Server.Local.SocketPath; path != "" {
		local := localserver.New(path, router, localserver.WithLogger(slogLogger))
		if err := local.Listen(); err != nil {
			cancel(fmt.Errorf("local socket: %w", err))
		} else {
			shutdownHandler.OnShutdown("local", local.Shutdown)
			go func() {
				if err := local.ListenAndServe(); err != nil {
					cancel(fmt.Errorf("local socket: %w", err))
				}
			}()
		}
	}

	if *configFile != "" {
		watcher, err := watchConfig(ctx, *configFile, overrides, slogLogger)
		if err != nil {
			log.Warn("config hot reload disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown("config-watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	err = shutdownHandler.Wait(ctx)
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		err = errors.Join(cause, err)
	}
	if err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// flagOverrides keeps the flags that were given a value.
func flagOverrides(flags map[string]string) map[string]any {
	out := make(map[string]any)
	for key, value := range flags {
		if value != "" {
			out[key] = value
		}
	}
	return out
}

// loadConfig loads configuration from file, environment and flags.
func loadConfig(configFile string, overrides map[string]any) (*config.ServerConfig, error) {
	cfg, err := config.LoadWithOverrides(configFile, overrides)
	if err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// initLogger initializes the structured logger.
// Returns both the logger interface and slog.Logger for components that need it.
func initLogger(cfg *config.ServerConfig) (logger.Logger, *slog.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.SetDefault(log)

	return log, logger.Slog(log), nil
}

// initStorage opens the configured KV engine and registers its metrics.
func initStorage(cfg *config.ServerConfig, log *slog.Logger, registry *metric.Registry) (storage.KVEngine, error) {
	var kv storage.KVEngine
	switch cfg.Storage.Engine {
	case storage.EngineMemory:
		log.Warn("memory storage engine selected, the board will not survive a restart")
		kv = memory.NewKV()
	default:
		kvCfg := storage.DefaultKVConfig(cfg.Storage.DataDir)
		kvCfg.Badger.GCInterval = cfg.Storage.GCInterval
		kvCfg.Badger.SyncWrites = cfg.Storage.SyncWrites

		engine, err := storage.NewBadgerEngine(kvCfg, log)
		if err != nil {
			return nil, err
		}
		kv = engine.RegisterMetrics(registry.Registerer())
	}

	if err := registry.RegisterCollector(kv); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("register storage collector: %w", err)
	}
	return kv, nil
}

// initServices builds the document store over kv, restores the saved
// board and returns the tab controller that serves it.
func initServices(ctx context.Context, cfg *config.ServerConfig, kv storage.KVEngine,
	log logger.Logger, registry *metric.Registry) (*service.TabController, error) {
	adapterOpts := []persist.Option{persist.WithLogger(log)}
	if secret := cfg.Security.EncryptionKey; secret != "" {
		cipher, err := adaptive.FromSecret(secret, adaptive.CipherType(cfg.Security.Cipher))
		if err != nil {
			return nil, fmt.Errorf("init cipher: %w", err)
		}
		adapterOpts = append(adapterOpts, persist.WithCipher(cipher))
		log.Info("at-rest encryption enabled", "cipher", string(cipher.Type()))
	}
	adapter := persist.New(kv, adapterOpts...)

	store := service.NewDocumentStore(adapter,
		service.WithStoreMetrics(registry),
		service.WithStoreLogger(log))
	restored := store.Restore(ctx)

	controller := service.NewTabController(store, adapter,
		service.WithUploadPolicy(domain.NewUploadPolicy(cfg.Upload.AllowedExtensions)),
		service.WithControllerMetrics(registry))

	log.Info("board restored",
		"documents", restored,
		"encrypted", adapter.Encrypted(),
		"theme", string(controller.Theme(ctx)))

	return controller, nil
}

// watchConfig reloads the log level whenever the config file changes.
// Other settings take effect on restart. Flag overrides still win.
func watchConfig(ctx context.Context, path string, overrides map[string]any, log *slog.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(path); err != nil {
		_ = watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(string) {
		cfg, err := config.LoadWithOverrides(path, overrides)
		if err != nil {
			log.Error("config reload failed", "error", err)
			return
		}
		if cfg.Log.Level == logger.GetLevel() {
			return
		}
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			log.Error("config reload failed", "error", err)
			return
		}
		log.Info("log level changed", "level", cfg.Log.Level)
	})
	go watcher.Run(ctx)
	return watcher, nil
}
