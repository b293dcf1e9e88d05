package main

import (
	"fmt"
	"shoutd/internal"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent [n]",
	Short: "Show the last n shoutouts from the live log (default 10, max 50)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *internal.App) error {
			reply, err := app.Exec(actor, strings.TrimSpace("/shoutouts "+strings.Join(args, "")))
			printReply(cmd.OutOrStdout(), reply)
			return err
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show totals, top users and peak hours",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *internal.App) error {
			if !jsonOutput {
				reply, err := app.Exec(actor, "/shoutoutadmin stats")
				printReply(cmd.OutOrStdout(), reply)
				return err
			}
			view, err := app.Stats()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(view, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		})
	},
}

func init() {
	statsCmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.AddCommand(recentCmd, statsCmd)
}
