package main

import (
	"context"
	"os/signal"
	"shoutd/internal"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Serve actor<TAB>command records from stdin until EOF or a signal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return withApp(func(app *internal.App) error {
			return app.Run(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
