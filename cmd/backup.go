/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/spf13/cobra"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup <path>",
	Short: "Write a compressed snapshot of all data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			if err := a.Store.Backup(args[0]); err != nil {
				return fmt.Errorf("backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Backup written to %s\n", ui.Icon("✓", ui.StyleSuccess), args[0])
			return nil
		})
	},
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore <path>",
	Short: "Replace all data with a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			if err := a.Store.Restore(args[0]); err != nil {
				return fmt.Errorf("restore: %w", err)
			}
			a.Reload()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Restored %d tasks from %s\n", ui.Icon("✓", ui.StyleSuccess), len(a.Tasks.Tasks()), args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(backupCmd, restoreCmd)
}
