package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/ctxlog"
	"github.com/vk/fmlgen/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	closeLog func() error
	registry *registry.Registry
	loader   config.Loader
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// When no modules are given the core backends are registered.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logW, closeLog := logWriter(appConfig.LogFile, outW)
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	logger.Debug("Logger configured successfully.", "log_file", appConfig.LogFile)

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All backend modules registered.", "count", len(modules), "backends", reg.Names())

	return &App{
		outW:     outW,
		logger:   logger,
		closeLog: closeLog,
		registry: reg,
		loader:   loader,
		config:   appConfig,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Close releases the log file, if any.
func (a *App) Close() error {
	return a.closeLog()
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
