package cmd

import (
	"github.com/spf13/cobra"

	"storefront.GO/core/registry"
)

// Register adds a command. Call from init() in custom packages. Panics if the
// registry is locked or a command with the same name is already registered.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Apply)")
	}
	list := registered()
	for _, existing := range list {
		if existing.Name() == c.Name() {
			panic("cmd/registry: duplicate command " + c.Name())
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(list, c))
}

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Apply adds all registered commands to root once and locks the cmd registry.
func Apply() {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		return
	}
	for _, c := range registered() {
		rootCmd.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
