package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	ExitOK       = 0
	ExitFindings = 1
	ExitFailure  = 2
)

// ExitError carries a process exit code without an operational failure
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

type globalFlags struct {
	logLevel  string
	logFormat string
}

// NewRootCommand creates the command tree
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:           "trxlint",
		Short:         "trxlint reports Objection.js calls that do not forward the transaction in scope",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "console", "log format: console or json")
	rootCmd.AddCommand(newLintCmd(flags), newRulesCmd())
	return rootCmd
}

// Execute runs the command tree and maps the outcome to an exit code
func Execute(ctx context.Context, args ...string) int {
	rootCmd := NewRootCommand()
	if args != nil {
		rootCmd.SetArgs(args)
	}
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	return ExitFailure
}

func (f *globalFlags) sink(cmd *cobra.Command) zapcore.WriteSyncer {
	if file, ok := cmd.ErrOrStderr().(*os.File); ok {
		return zapcore.Lock(file)
	}
	return zapcore.AddSync(cmd.ErrOrStderr())
}
