package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/lcapgen/cmd/lcapgen/commands"
	"github.com/teranos/lcapgen/config"
	"github.com/teranos/lcapgen/errors"
	"github.com/teranos/lcapgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "lcapgen",
	Short: "lcapgen - scaffold UI component packages from low-code business components",
	Long: `lcapgen - scaffold UI component packages from low-code business components.

Available commands:
  extract  - Convert a host application dump into components.json
  generate - Generate component folders from components.json
  watch    - Regenerate whenever components.json changes
  history  - List recorded generation runs
  config   - Manage lcapgen configuration
  version  - Show version information

Examples:
  lcapgen extract --dump app.json --app myapp
  lcapgen generate
  lcapgen generate -f react -v
  lcapgen history`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			config.SetConfigFile(path)
		}
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")

		// log.* settings apply unless overridden on the command line;
		// a broken config file is reported by the command itself
		if v, err := config.GetViper(); err == nil {
			if !cmd.Flags().Changed("log-json") {
				jsonLogs = v.GetBool("log.json")
			}
			logger.SetTheme(v.GetString("log.theme"))
		}

		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")
	rootCmd.PersistentFlags().String("config", "", "Config file (disables the user/project config search)")

	rootCmd.AddCommand(commands.ExtractCmd)
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.HistoryCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
