package ports

import "go.trai.ch/jig/internal/core/domain"

// ConfigLoader loads the build definition file and registers its tasks.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the build definition at path and returns a populated
	// task registry.
	Load(path string) (*domain.Registry, error)
}
