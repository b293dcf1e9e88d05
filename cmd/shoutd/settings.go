package main

import (
	"shoutd/internal"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings [name value...]",
	Short: "List runtime settings, or validate a change against the loaded config",
	Long: `Without arguments, lists every runtime setting. With a name and a value,
applies the change for this invocation only; the config file is not rewritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *internal.App) error {
			reply, err := app.Exec(actor, strings.TrimSpace("/shoutoutadmin config "+strings.Join(args, " ")))
			printReply(cmd.OutOrStdout(), reply)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
