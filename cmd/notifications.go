/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/josephgoksu/dayplan/models"
	"github.com/spf13/cobra"
)

// notificationsCmd groups the notification log commands
var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notes"},
	Short:   "Show and manage notifications from the last three days",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			log := a.Notifications.Log()
			list := log.Sorted()
			if notificationsUnread {
				var unread []models.Notification
				for _, n := range list {
					if !n.Read {
						unread = append(unread, n)
					}
				}
				list = unread
			}
			out := cmd.OutOrStdout()
			if isJSON() {
				if list == nil {
					list = []models.Notification{}
				}
				return printJSON(out, list)
			}
			ui.RenderPageHeader(out, "Notifications", fmt.Sprintf("%d unread", log.UnreadCount()))
			fmt.Fprint(out, ui.RenderNotifications(list))
			return nil
		})
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			log := a.Notifications.Log()
			id := args[0]
			for _, n := range log.All() {
				if strings.HasPrefix(n.ID, id) {
					id = n.ID
					break
				}
			}
			if !log.MarkRead(id) {
				return fmt.Errorf("notification not found: %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", log.UnreadCount())
			return nil
		})
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification read",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			a.Notifications.Log().MarkAllRead()
			fmt.Fprintln(cmd.OutOrStdout(), "All notifications marked read.")
			return nil
		})
	},
}

var notificationsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all notifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			a.Notifications.Log().ClearAll()
			fmt.Fprintln(cmd.OutOrStdout(), "Notifications cleared.")
			return nil
		})
	},
}

var notificationsUnread bool

func init() {
	rootCmd.AddCommand(notificationsCmd)
	notificationsCmd.AddCommand(notificationsListCmd, notificationsReadCmd, notificationsReadAllCmd, notificationsClearCmd)
	notificationsListCmd.Flags().BoolVarP(&notificationsUnread, "unread", "u", false, "Only unread notifications")
}
