package registry

// Core keys for GlobalRegistry.
const (
	// Extension registries (cmd, cron, routes) stored in GlobalRegistry
	KeyRegistryCmd    = "registry:cmd"
	KeyRegistryCron   = "registry:cron"
	KeyRegistryRoutes = "registry:routes"
)
