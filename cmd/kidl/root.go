package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/CWBudde/go-kidl-lsp/internal/config"
	"github.com/CWBudde/go-kidl-lsp/internal/logging"
)

const version = "0.1.0"

var log = commonlog.GetLogger("kidl.cmd")

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
}

// globalState carries everything a command touches outside its own
// arguments, so tests can swap it out.
type globalState struct {
	ctx       context.Context
	fs        afero.Fs
	stdout    io.Writer
	stderr    io.Writer
	stdin     io.Reader
	lookupEnv func(string) (string, bool)

	flags  globalFlags
	config config.Config
}

func newGlobalState() *globalState {
	return &globalState{
		ctx:       context.Background(),
		fs:        afero.NewOsFs(),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		stdin:     os.Stdin,
		lookupEnv: os.LookupEnv,
	}
}

func newRootCmd(gs *globalState) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kidl",
		Short:         "Language tooling for KIDL schemas",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return gs.configure(cmd)
		},
	}

	rootCmd.SetOut(gs.stdout)
	rootCmd.SetErr(gs.stderr)
	rootCmd.SetIn(gs.stdin)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&gs.flags.configPath, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")
	flags.StringVar(&gs.flags.logLevel, "log-level", "", "log level: none, critical, error, warning, notice, info, debug")
	flags.StringVar(&gs.flags.logFile, "log-file", "", "log file path (default: stderr)")

	rootCmd.AddCommand(newLSPCmd(gs))
	rootCmd.AddCommand(newParseCmd(gs))
	rootCmd.AddCommand(newCheckCmd(gs))
	rootCmd.AddCommand(newVersionCmd(gs))

	return rootCmd
}

// configure loads the configuration, applies flag overrides and sets up
// logging.
func (gs *globalState) configure(cmd *cobra.Command) error {
	conf, err := config.Load(gs.fs, gs.flags.configPath, gs.lookupEnv)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		conf.LogLevel = gs.flags.logLevel
	}
	if flags.Changed("log-file") {
		conf.LogFile = gs.flags.logFile
	}

	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logging.Configure(conf.LogLevel, conf.LogFile); err != nil {
		return err
	}

	gs.config = conf
	log.Debugf("configuration: %+v", conf)
	return nil
}

func newVersionCmd(gs *globalState) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show application version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(gs.stdout, "kidl version %s\n", version)
			return err
		},
	}
}
