package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/chitx/calculator"
	"github.com/rustyeddy/chitx/config"
	"github.com/rustyeddy/chitx/history"
	"github.com/rustyeddy/chitx/internal/logging"
	"github.com/rustyeddy/chitx/xirr"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// RootConfig carries the global flags and everything derived from them.
type RootConfig struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
	NoColor    bool

	Config *config.Config
	Logger *zap.Logger
}

// setup loads the config file and environment, then lets explicitly set
// flags win.
func (rc *RootConfig) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(rc.ConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.History.DBPath = rc.DBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = rc.LogLevel
	}
	if flags.Changed("no-color") {
		cfg.Log.NoColor = rc.NoColor
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.NoColor)
	if err != nil {
		return err
	}

	rc.Config = cfg
	rc.Logger = logger
	return nil
}

func (rc *RootConfig) solver() *xirr.Solver {
	return xirr.New(rc.Config.Solver, xirr.WithLogger(rc.Logger.Named("xirr")))
}

func (rc *RootConfig) openStore() (*history.SQLite, error) {
	s, err := history.NewSQLite(rc.Config.History.DBPath, rc.Config.History.MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	return s, nil
}

// calculator returns a calculator using the configured solver and grading
// levels. store may be nil.
func (rc *RootConfig) calculator(store history.Store) *calculator.Calculator {
	c := calculator.New(rc.solver(), store, rc.Logger)
	if len(rc.Config.Levels) > 0 {
		c.Levels = rc.Config.Levels
	}
	return c
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:   "chitx",
		Short: "chitx: real annualized returns (XIRR) for chit funds",
		Long: `chitx works out what a chit fund really returns.

Give it what you pay each period, for how many periods, and the lump sum you
receive at the end; it builds the dated cash flows and solves for the XIRR.

Examples:
  chitx calc --amount 10000 --periods 24 --lump-sum 300000 --start 2024-01-01
  chitx solve flows.csv
  chitx history list`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "./chitx.sqlite", "SQLite history database")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.NoColor, "no-color", false, "Disable colored output")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.setup(cmd)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if rc.Logger != nil {
			_ = rc.Logger.Sync()
		}
	}

	// Subcommands
	cmd.AddCommand(
		newCalcCmd(rc),
		newSolveCmd(rc),
		newExportCmd(rc),
		newSweepCmd(rc),
		newHistoryCmd(rc),
		newConfigCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chitx %s\n", Version)
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
