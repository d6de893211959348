package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Browse the shop catalog and manage the cart from the terminal",
}

var apiBaseURL string

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "backend base URL ending in /api (default $API_BASE_URL)")
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
