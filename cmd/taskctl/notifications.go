package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/0zturkSamet/task-manager/domain"
)

func notificationsCmd() *cobra.Command {
	var unreadOnly bool
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show your notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var notifications []domain.Notification
			var err error
			if unreadOnly {
				notifications, err = apiClient.UnreadNotifications(cmd.Context())
			} else {
				notifications, err = apiClient.Notifications(cmd.Context())
			}
			if err != nil {
				return err
			}
			if len(notifications) == 0 {
				fmt.Println("no notifications")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tWHEN\tTITLE\tMESSAGE\tREAD")
			for _, n := range notifications {
				read := "yes"
				if !n.IsRead {
					read = "no"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", n.ID, n.CreatedAt, n.Title, n.Message, read)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "show only unread notifications")
	cmd.AddCommand(notificationsReadAllCmd())
	return cmd
}

func notificationsReadAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.MarkAllNotificationsRead(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("all notifications marked read")
			return nil
		},
	}
}
