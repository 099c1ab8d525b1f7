package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jeffamaxey/notebooker/config"
	"github.com/jeffamaxey/notebooker/internal/core"
	"github.com/jeffamaxey/notebooker/internal/data"
	"github.com/jeffamaxey/notebooker/internal/executor"
	"github.com/jeffamaxey/notebooker/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Store    core.ResultStore
	Cache    core.RenderCache
	Launcher *service.Launcher
	Snapshot *service.Snapshot
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the result store, render cache, launcher, and snapshot
// services from their dependencies.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps and config are required")
	}
	if deps.DB == nil {
		return ServiceContainer{}, errors.New("database connection is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	store, err := core.OpenStore(core.StoreKind(cfg.Store.Kind), core.StoreConfig{
		DB:     deps.DB,
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("open result store: %w", err)
	}

	var cache core.RenderCache
	if deps.RedisClient != nil {
		cache = data.NewRedisRenderCache(deps.RedisClient, cfg.Cache.RenderTTL)
	}

	launcher, err := service.NewLauncher(service.LauncherOptions{
		Store:  store,
		Runner: executor.NewExecRunner(),
		Exec: executor.Options{
			CLIPath:       cfg.Executor.CLIPath,
			OutputDir:     cfg.Executor.OutputDir,
			TemplateDir:   cfg.Executor.TemplateDir,
			PyTemplateDir: cfg.Executor.PyTemplateDir,
			DisableGit:    cfg.Executor.DisableGit,
			StoreArgs:     cfg.Postgres.CommandLineArgs(),
		},
		Logger:          logger,
		GracePeriod:     cfg.Executor.GracePeriod,
		DefaultMailfrom: cfg.Executor.DefaultMailfrom,
		DefaultRetries:  cfg.Executor.DefaultRetries,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build launcher: %w", err)
	}

	snapshot, err := service.NewSnapshot(service.SnapshotOptions{
		Store:  store,
		Root:   cfg.Snapshot.Root,
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build snapshot service: %w", err)
	}

	return ServiceContainer{
		Store:    store,
		Cache:    cache,
		Launcher: launcher,
		Snapshot: snapshot,
	}, nil
}
