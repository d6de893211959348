// Package custom shows how site-specific extensions hook into the CLI, the cron
// scheduler and the preview server without touching core packages.
package custom

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"storefront.GO/cmd"
	"storefront.GO/cron"
	"storefront.GO/html"
	"storefront.GO/service/catalog"
)

func init() {
	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "custom:sort-options",
		Short: "Print the sort options offered by the catalog",
		Run: func(c *cobra.Command, args []string) {
			for _, o := range catalog.SortOptions {
				fmt.Fprintf(c.OutOrStdout(), "%-12s %s\n", o.Value, o.Label)
			}
		},
	})

	// Cron job, run on demand with cron:start --job customping
	cron.Register("customping", "", func(args ...string) {
		fmt.Println("Custom cron: ping at", args)
	})

	// HTTP route
	html.RegisterGET("/custom/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"pong": "ok"})
	})
}
