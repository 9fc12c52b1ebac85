package app

import (
	"go.trai.ch/jig/internal/adapters/logger"
	"go.trai.ch/jig/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    *logger.Logger
	Store     ports.SettingsStore
	Telemetry ports.Telemetry
}
