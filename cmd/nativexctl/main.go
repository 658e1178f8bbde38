package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/garyjia/memories-nativex/internal/config"
	"github.com/garyjia/memories-nativex/internal/container"
	"github.com/garyjia/memories-nativex/pkg/utils"
)

var (
	// Global flags
	configPath string
	verbose    bool
	useRPC     bool

	// Set up in PersistentPreRunE
	logger *zap.Logger
	app    *container.Container
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nativexctl",
	Short: "Inspect and drive the native host's media configuration",
	Long: `nativexctl talks to the native host over its loopback API and to the
remote photo server, the same way the web layer does.

Bridge calls (folders, permission, scan) reach the host only when the loopback
bridge is enabled, either in the config file or with --rpc.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(".env"); err != nil {
			return err
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if useRPC {
			cfg.Nativex.RPCEnabled = true
		}

		level := "error"
		if verbose {
			level = "debug"
		}
		logger, err = utils.NewLogger(utils.LoggerConfig{Level: level, OutputPath: "stderr", Format: "console"})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		app, err = container.NewContainer(container.FromAppConfig(cfg), logger)
		if err != nil {
			return err
		}
		return app.Start(cmd.Context())
	},
}

// shutdown releases what PersistentPreRunE set up. It runs as a cobra
// finalizer, so it also runs when a command's RunE fails.
func shutdown() {
	if app != nil {
		if err := app.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		app = nil
	}
	if logger != nil {
		_ = logger.Sync()
		logger = nil
	}
}

func init() {
	cobra.OnFinalize(shutdown)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: environment only)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&useRPC, "rpc", false, "attach the host bridge over loopback HTTP")

	foldersCmd.AddCommand(foldersGetCmd, foldersSetCmd)
	permissionCmd.AddCommand(permissionGetCmd, permissionAllowCmd)
	reportsCmd.Flags().IntVarP(&reportsLimit, "limit", "n", 0, "number of reports (default from scan.history_limit)")

	rootCmd.AddCommand(foldersCmd, permissionCmd, scanCmd, reportsCmd)
}

func main() {
	err := rootCmd.Execute()
	shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
