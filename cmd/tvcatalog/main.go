package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/voyagen/tvcatalog/internal/cache"
	"github.com/voyagen/tvcatalog/internal/config"
	"github.com/voyagen/tvcatalog/internal/logging"
	"github.com/voyagen/tvcatalog/internal/playlist"
	"github.com/voyagen/tvcatalog/internal/server"
	"github.com/voyagen/tvcatalog/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Optional config file path (YAML); else use env DATABASE_URL")
	skipMigrations := flag.Bool("skip-migrations", false, "Do not apply schema migrations on startup")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Init(cfg.LogLevel, cfg.LogFormat, "tvcatalog")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appStore, cleanup, err := openStore(ctx, cfg, *skipMigrations)
	if err != nil {
		log.Fatal().Err(err).Msg("store")
	}
	defer cleanup()

	srv := server.New(appStore, cfg, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Error().Err(err).Msg("server")
		cleanup()
		os.Exit(1)
	}
}

// openStore builds the Store chain: Postgres (or a Memory store loaded from
// CHANNELS_FILE when no DATABASE_URL is configured), wrapped by the Redis
// cache or, for Postgres without Redis, a local LRU.
// The returned cleanup closes every opened connection and is safe to call twice.
func openStore(ctx context.Context, cfg *config.Config, skipMigrations bool) (store.Store, func(), error) {
	var closers []func()
	closed := false
	cleanup := func() {
		if closed {
			return
		}
		closed = true
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var base store.Store
	if cfg.DatabaseURL == "" {
		mem, err := loadMemory(ctx, cfg.ChannelsFile)
		if err != nil {
			return nil, cleanup, err
		}
		log.Info().Str("source", cfg.ChannelsFile).Int("channels", mem.Len()).Msg("serving channels from memory")
		base = mem
	} else {
		if !skipMigrations {
			version, err := store.RunMigrations(cfg.DatabaseURL, "file://"+migrationsDir())
			if err != nil {
				return nil, cleanup, fmt.Errorf("migrate: %w", err)
			}
			log.Info().Uint("version", version).Msg("schema migrated")
		}
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, cleanup, fmt.Errorf("db: %w", err)
		}
		closers = append(closers, pg.Close)
		base = pg
	}

	if cfg.RedisURL == "" {
		// A fixture-backed store is already in memory; only Postgres benefits from a local cache.
		if cfg.DatabaseURL == "" || cfg.CacheSize == 0 {
			log.Info().Msg("caching disabled")
			return base, cleanup, nil
		}
		log.Info().Int("size", cfg.CacheSize).Dur("ttl", cfg.CacheTTL).Msg("local LRU cache enabled (REDIS_URL not set)")
		return store.NewCachedStore(base, cache.NewLocal(cfg.CacheSize, cfg.CacheTTL), cfg.CacheTTL), cleanup, nil
	}
	rds, err := cache.New(cfg.RedisURL)
	if err != nil {
		cleanup()
		return nil, cleanup, fmt.Errorf("redis: %w", err)
	}
	closers = append(closers, func() { _ = rds.Close() })
	if err := rds.Ping(ctx); err != nil {
		cleanup()
		return nil, cleanup, fmt.Errorf("redis ping: %w", err)
	}
	log.Info().Dur("ttl", cfg.CacheTTL).Msg("redis connected (caching enabled)")
	return store.NewCachedStore(base, rds, cfg.CacheTTL), cleanup, nil
}

// loadMemory reads an M3U playlist (file or URL) or a YAML fixture file.
func loadMemory(ctx context.Context, source string) (*store.Memory, error) {
	if !playlist.IsSource(source) {
		return store.LoadMemoryFile(source)
	}
	channels, err := playlist.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("playlist: %w", err)
	}
	return store.NewMemory(channels), nil
}

// migrationsDir finds ./migrations in the working directory, falling back to
// the directory next to the executable.
func migrationsDir() string {
	dir, err := filepath.Abs("migrations")
	if err != nil {
		dir = "migrations"
	}
	if _, err := os.Stat(dir); err != nil {
		if exe, e := os.Executable(); e == nil {
			dir = filepath.Join(filepath.Dir(exe), "migrations")
		}
	}
	return dir
}
