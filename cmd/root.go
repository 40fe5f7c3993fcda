package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/gosh-shell/gosh/core/config"
	"github.com/gosh-shell/gosh/core/engine"
	"github.com/gosh-shell/gosh/core/environ"
	"github.com/gosh-shell/gosh/core/logger"
	"github.com/gosh-shell/gosh/core/shell"
)

var (
	cfgPath    string
	commandStr string

	exitStatus int
)

// rootCmd runs the shell: interactive by default, -c for a command
// string, one positional argument for a script file.
var rootCmd = &cobra.Command{
	Use:   "gosh [script]",
	Short: "A small command interpreter",
	Long:  `gosh is a small interactive shell with pipelines, redirections and a handful of builtins.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := afero.NewOsFs()

		cfg, err := config.Load(fs, cfgPath)
		if err != nil {
			return fmt.Errorf("couldn't load config: %v", err)
		}

		baseLogger := logger.NewNopLogger()
		if cfg.LogFile != "" {
			logFd, err := fs.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
			if err != nil {
				return fmt.Errorf("couldn't open log file: %v", err)
			}
			defer logFd.Close()
			baseLogger = logger.NewJSONLinesRecorder(logFd)
		}

		sess := &engine.Session{
			Env:    environ.NewFromEnviron(os.Environ()),
			Fs:     fs,
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}

		sh := shell.New(cfg, sess, baseLogger.NewSession())
		sh.Init()

		switch {
		case commandStr != "":
			exitStatus = sh.RunString(commandStr)
		case len(args) == 1:
			script, err := fs.Open(args[0])
			if err != nil {
				return fmt.Errorf("%s: %v", args[0], err)
			}
			defer script.Close()
			exitStatus = sh.RunScript(script)
		default:
			exitStatus = sh.RunInteractive()
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command and exits with the shell's status.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gosh: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitStatus)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultConfigPath, "config file path")
	rootCmd.Flags().StringVarP(&commandStr, "command", "c", "", "run a command string and exit")
	rootCmd.SilenceErrors = true
}
