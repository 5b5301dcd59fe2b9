/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/logger"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the background process in the foreground",
	Long: `Keep dayplan running: roll tasks over at midnight, tick the time tracker,
mirror state to the bridge directory and pick up changes made by other
dayplan commands. Stops on Ctrl-C or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if isVerbose() {
				fmt.Fprintf(cmd.ErrOrStderr(), "dayplan running (data in %s)\n", a.Config.Data.Dir)
			}
			if logs, err := logger.ListCrashLogs(); err == nil && len(logs) > 0 {
				slog.Warn("previous crash logs found", "count", len(logs), "latest", logs[len(logs)-1])
			}
			if err := a.Run(ctx); err != nil {
				return fmt.Errorf("run: %w", err)
			}
			LogError("dayplan stopped", nil)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
