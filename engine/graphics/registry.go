package graphics

import (
	"fmt"
	"sync"
)

// DriverFactory creates a new driver instance.
type DriverFactory func() (Driver, error)

var (
	registryMu sync.RWMutex
	drivers    = make(map[string]DriverFactory)
	// Priority order for driver selection (first available wins). The real
	// backend outranks the in-memory one.
	driverPriority = []string{"opengl", "gltest"}
)

// Register registers a driver factory with the given name. This is typically
// called from init() functions in backend packages. A driver registered
// under an existing name replaces it.
func Register(name string, factory DriverFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	drivers[name] = factory
}

// Available returns the registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	return names
}

// Open instantiates the named backend.
func Open(name string) (Driver, error) {
	registryMu.RLock()
	factory, ok := drivers[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("graphics: no driver registered as %q", name)
	}
	return factory()
}

// Default opens the best available backend in priority order.
func Default() (Driver, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, name := range driverPriority {
		if factory, ok := drivers[name]; ok {
			d, err := factory()
			if err == nil {
				return d, nil
			}
		}
	}
	for _, factory := range drivers {
		if d, err := factory(); err == nil {
			return d, nil
		}
	}
	return nil, fmt.Errorf("graphics: no driver available")
}
