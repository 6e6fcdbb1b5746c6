package provider

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	appconfig "video2csv/internal/app/config"
	apperrors "video2csv/internal/app/errors"
)

// BackendCreator is a function that creates a backend from configuration
type BackendCreator func(cfg *appconfig.Config, logger *zap.Logger) (Backend, error)

// backendRegistry stores backend creation functions
var (
	backendRegistry = make(map[string]BackendCreator)
	registryMutex   sync.RWMutex
)

// RegisterProvider registers a backend creator function. Backends call it
// from init().
func RegisterProvider(name string, creator BackendCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	backendRegistry[name] = creator
}

// GetProviderCreator returns the creator function for a backend name
func GetProviderCreator(name string) (BackendCreator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := backendRegistry[name]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrUnknownBackend, "backend %s not registered", name)
	}
	return creator, nil
}

// CreateProvider builds the backend selected by cfg.Backend
func CreateProvider(cfg *appconfig.Config, logger *zap.Logger) (Backend, error) {
	creator, err := GetProviderCreator(cfg.Backend)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	backend, err := creator(cfg, logger.Named(cfg.Backend))
	if err != nil {
		return nil, fmt.Errorf("create %s backend: %w", cfg.Backend, err)
	}
	return backend, nil
}

// ListRegisteredProviders returns all registered backend names, sorted
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	var names []string
	for name := range backendRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
