package cli

import (
	"os"

	"github.com/soyeahso/kaiwa/internal/config"
	"github.com/soyeahso/kaiwa/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	// loaded at init time
	paths config.Paths
	cfg   config.Config
	log   *logging.Logger
)

// setup resolves paths, loads the config file and builds the root logger.
// defaultLevel applies when neither --log-level nor the config sets one.
func setup(defaultLevel string) error {
	var err error
	paths, err = config.ResolvePaths()
	if err != nil {
		return err
	}
	if cfgFile != "" {
		paths.Config = cfgFile
	}

	cfg, err = config.Load(paths.Config)
	if err != nil {
		return err
	}

	level := logLevel
	if level == "" {
		level = defaultLevel
	}
	if level == "" {
		level = cfg.Logging.Level
	}
	log = logging.NewWithStyle(os.Stderr, level, cfg.Logging.ConsoleStyle)
	return nil
}

func newServerRootCmd() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "kaiwa-server",
		Short: "kaiwa — voice conversation practice backend",
		Long:  "kaiwa-server serves role-play scenarios and relays recorded learner speech to a conversational AI partner.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup("")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.kaiwa/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")
	flags.register(cmd)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd("kaiwa-server"))
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}

// ExecuteServer runs the kaiwa-server root command.
func ExecuteServer() error {
	return newServerRootCmd().Execute()
}
