package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"storefront.GO/config"
	"storefront.GO/cron"
	"storefront.GO/cron/jobs"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		s := newSession(out)
		defer s.close()
		jobs.RegisterCartCount(s.ctl, config.AppConfig.CartRefreshSchedule, s.logger)
		jobs.RegisterOptionsRefresh(s.ctl, s.purge, config.AppConfig.OptionsRefreshSchedule, s.logger)

		if jobName != "" {
			name := strings.ToLower(jobName)
			if j, ok := cron.Jobs()[name]; ok {
				fmt.Fprintf(out, "Running cron job: %s\n", jobName)
				j.Run(args...)
				snap := s.ctl.Snapshot()
				fmt.Fprintf(out, "Cart count: %d, categories: %d, brands: %d\n", snap.CartCount, len(snap.Categories), len(snap.Brands))
				return
			}
			fmt.Fprintf(out, "Unknown job: %s\n", jobName)
			os.Exit(1)
		}

		fmt.Fprintln(out, "Starting cron scheduler...")
		c, err := cron.StartCron(s.logger)
		if err != nil {
			fmt.Fprintf(out, "Cron failed: %v\n", err)
			os.Exit(1)
		}
		defer c.Stop()
		fmt.Fprintln(out, "Cron scheduler started. Press Ctrl+C to exit.")
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
