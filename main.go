package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhangbiao2009/primitive-db/pkg/config"
	"github.com/zhangbiao2009/primitive-db/pkg/db"
	"github.com/zhangbiao2009/primitive-db/pkg/logging"
	"github.com/zhangbiao2009/primitive-db/pkg/shell"
)

func main() {
	if err := execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// execute runs the command line and closes the log file however the
// command ended.
func execute(args []string) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if cerr := logging.Close(); cerr != nil {
		fmt.Fprintln(os.Stderr, "close log:", cerr)
	}
	return err
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()

	rootCmd := &cobra.Command{
		Use:   "primitive-db",
		Short: "A small file-backed table store with an interactive shell",
		Long: `primitive-db keeps typed tables in JSON files: one metadata file for the
schema catalog and one file per table under the data directory.

Without a subcommand it starts an interactive shell. Type 'help' there for
the list of commands.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return logging.Init(cfg.Logging())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, database, closeFn, err := openShell(cfg)
			if err != nil {
				return err
			}
			defer closeFn()
			return sh.Run(database)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding one JSON file per table")
	flags.StringVar(&cfg.MetaFile, "meta", cfg.MetaFile, "path of the metadata (catalog) file")
	flags.StringVar(&cfg.HistoryFile, "history", cfg.HistoryFile, "shell history file (empty disables history)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	flags.BoolVarP(&cfg.AssumeYes, "yes", "y", cfg.AssumeYes, "do not ask before drop_table and delete")

	rootCmd.AddCommand(newExecCmd(&cfg), newRunCmd(&cfg))
	return rootCmd
}

func newExecCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command>",
		Short: "Run a single command and exit",
		Example: `  primitive-db exec 'create_table users name:str age:int'
  primitive-db exec 'select from users where age > 20'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, database, closeFn, err := openShell(*cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := sh.Exec(database, strings.Join(args, " ")); err != nil {
				// already printed with the result
				cmd.SilenceErrors = true
				return err
			}
			return nil
		},
	}
}

func newRunCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Run the commands in a file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer f.Close()

			sh, database, closeFn, err := openShell(*cfg)
			if err != nil {
				return err
			}
			defer closeFn()
			return sh.RunScript(database, f)
		},
	}
}

// openShell wires a readline terminal, the shell and a file-backed
// workspace together. The shell doubles as the confirmation prompt.
func openShell(cfg config.Config) (*shell.Shell, *db.DB, func(), error) {
	rl, err := shell.NewReadline(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open terminal: %w", err)
	}

	sh := shell.New(rl, rl.Stdout(), cfg.Prompt)
	database, err := db.Open(cfg, sh)
	if err != nil {
		rl.Close()
		return nil, nil, nil, err
	}

	logging.GetLogger().Debug("workspace opened", "data_dir", cfg.DataDir, "meta", cfg.MetaFile)
	return sh, database, func() { rl.Close() }, nil
}
