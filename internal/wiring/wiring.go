// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/jig/internal/adapters/config"
	_ "go.trai.ch/jig/internal/adapters/fs"
	_ "go.trai.ch/jig/internal/adapters/logger"
	_ "go.trai.ch/jig/internal/adapters/shell"
	_ "go.trai.ch/jig/internal/adapters/store"
	_ "go.trai.ch/jig/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/jig/internal/app"
)
