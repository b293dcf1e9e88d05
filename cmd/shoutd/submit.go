package main

import (
	"shoutd/internal"
	"strings"

	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit <message...>",
	Short: "Record one shoutout as --actor",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *internal.App) error {
			reply, err := app.Exec(actor, "/shoutout "+strings.Join(args, " "))
			printReply(cmd.OutOrStdout(), reply)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
}
