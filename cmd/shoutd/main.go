package main

import (
	"fmt"
	"io"
	"os"
	"shoutd/internal"
	"shoutd/internal/controllers"
	"shoutd/internal/di"
	"shoutd/internal/structures"

	"github.com/spf13/cobra"
)

var (
	configPath string
	debugMode  bool
	jsonOutput bool
	actor      string
)

var rootCmd = &cobra.Command{
	Use:           "shoutd <command>",
	Short:         "Rate-limited shoutout recorder",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config file (built-in defaults when empty)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&actor, "actor", "console", "actor name used for one-shot commands")
}

// withApp builds the application graph for one command and tears it down after.
func withApp(fn func(app *internal.App) error) error {
	app, cleanup, err := di.InitApp(&structures.CliFlags{
		ConfigPath: configPath,
		DebugMode:  debugMode,
	})
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(app)
}

func printReply(w io.Writer, r controllers.Reply) {
	for _, line := range r.Private {
		fmt.Fprintln(w, line)
	}
	for _, line := range r.Broadcast {
		fmt.Fprintln(w, line)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
