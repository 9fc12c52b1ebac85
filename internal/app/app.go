// Package app implements the application layer for jig.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/jig/internal/core/domain"
	"go.trai.ch/jig/internal/core/ports"
	"go.trai.ch/jig/internal/engine/runner"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	store        ports.SettingsStore
	logger       ports.Logger
	telemetry    ports.Telemetry
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, store ports.SettingsStore, logger ports.Logger, telemetry ports.Telemetry) *App {
	return &App{
		configLoader: loader,
		store:        store,
		logger:       logger,
		telemetry:    telemetry,
	}
}

// Run executes the build process for the specified targets. A fresh runner is
// constructed per invocation so staleness and execution results are never
// carried over between builds.
func (a *App) Run(ctx context.Context, configPath string, targetNames []string) error {
	if len(targetNames) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	registry, err := a.configLoader.Load(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	run := runner.New(registry, a.store, a.logger, a.telemetry)

	ran, err := run.Schedule(ctx, targetNames)
	if err != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}

	if a.store.Flag("verbose") == "true" {
		for i, name := range targetNames {
			if ran[i] {
				a.logger.Info(fmt.Sprintf("%s: executed", name))
			} else {
				a.logger.Info(fmt.Sprintf("%s: up to date", name))
			}
		}
	}

	return nil
}
