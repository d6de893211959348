package html

import (
	"sync"

	"github.com/labstack/echo/v4"

	"storefront.GO/core/registry"
)

var mu sync.Mutex

// RouteFunc registers routes on the preview server.
type RouteFunc func(e *echo.Echo, app *App)

func getRoutes() []RouteFunc {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryRoutes); ok && v != nil {
		return v.([]RouteFunc)
	}
	return nil
}

// RegisterRoute registers an extra route module. Call from init().
func RegisterRoute(fn RouteFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryRoutes) {
		panic("html/registry: routes locked (register only during init)")
	}
	list := getRoutes()
	list = append(list, fn)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryRoutes, list)
}

// RegisterGET is shorthand for registering a simple GET route.
func RegisterGET(path string, handler echo.HandlerFunc) {
	RegisterRoute(func(e *echo.Echo, _ *App) {
		e.GET(path, handler)
	})
}

// RegisterPOST is shorthand for registering a simple POST route.
func RegisterPOST(path string, handler echo.HandlerFunc) {
	RegisterRoute(func(e *echo.Echo, _ *App) {
		e.POST(path, handler)
	})
}

// ApplyRoutes calls all registered route modules. Locks the registry.
func ApplyRoutes(e *echo.Echo, app *App) {
	for _, fn := range getRoutes() {
		fn(e, app)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)
}
