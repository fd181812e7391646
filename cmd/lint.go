package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"go.uber.org/zap"

	"github.com/viant/trxlint/analyzer"
	"github.com/viant/trxlint/config"
	"github.com/viant/trxlint/inspector/repository"
	"github.com/viant/trxlint/report"
	"github.com/viant/trxlint/runner"
)

type lintFlags struct {
	config      string
	fix         bool
	format      string
	output      string
	concurrency int
	severity    string
	globals     []string
}

// newLintCmd creates the `lint` command
func newLintCmd(global *globalFlags) *cobra.Command {
	flags := &lintFlags{}
	lintCmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lints JavaScript and TypeScript sources for transaction forwarding",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(global.logLevel, global.logFormat, global.sink(cmd))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if len(args) == 0 {
				args = []string{"."}
			}
			return flags.run(cmd, logger, args)
		},
	}
	lintCmd.Flags().StringVarP(&flags.config, "config", "c", "", "config file (default is the closest .trxlint.yaml)")
	lintCmd.Flags().BoolVar(&flags.fix, "fix", false, "write safe fixes back to sources")
	lintCmd.Flags().StringVarP(&flags.format, "format", "f", string(report.FormatText), "report format: "+formatNames())
	lintCmd.Flags().StringVarP(&flags.output, "output", "o", "", "write report to file instead of stdout")
	lintCmd.Flags().IntVar(&flags.concurrency, "concurrency", 4, "number of files analyzed in parallel")
	lintCmd.Flags().StringVar(&flags.severity, "severity", "", "override trx-forwarding severity: off, warn or error")
	lintCmd.Flags().StringSliceVar(&flags.globals, "global", nil, "names provided by the runtime global scope")
	return lintCmd
}

func (f *lintFlags) run(cmd *cobra.Command, logger *zap.Logger, paths []string) error {
	ctx := cmd.Context()
	format, err := report.ParseFormat(f.format)
	if err != nil {
		return err
	}
	fs := afs.New()
	cfg, err := f.loadConfig(ctx, fs, logger, paths[0])
	if err != nil {
		return err
	}
	lint := runner.New(cfg,
		runner.WithFS(fs),
		runner.WithLogger(logger),
		runner.WithConcurrency(f.concurrency),
		runner.WithFix(f.fix))
	result, err := lint.Run(ctx, paths...)
	if err != nil {
		return err
	}
	if f.output == "" {
		if err = result.Write(cmd.OutOrStdout(), format); err != nil {
			return err
		}
	} else {
		buf := &bytes.Buffer{}
		if err = result.Write(buf, format); err != nil {
			return err
		}
		if err = fs.Upload(ctx, f.output, 0o644, buf); err != nil {
			return fmt.Errorf("failed to write report %v: %w", f.output, err)
		}
	}
	logger.Info("lint completed",
		zap.Int("files", result.Summary.Files),
		zap.Int("errors", result.Summary.Errors),
		zap.Int("warnings", result.Summary.Warnings),
		zap.Int("fixed", result.Summary.Fixed))
	if result.HasErrors() {
		return &ExitError{Code: ExitFindings}
	}
	return nil
}

// loadConfig reads explicit or detected configuration, then applies flag overrides
func (f *lintFlags) loadConfig(ctx context.Context, fs afs.Service, logger *zap.Logger, location string) (*config.Config, error) {
	cfg := config.Default()
	URL := f.config
	if URL == "" {
		repo, err := repository.New().DetectRepository(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("failed to detect project for %v: %w", location, err)
		}
		project := repo.Info
		URL = project.ConfigPath
		logger.Debug("detected project",
			zap.String("kind", repo.Kind),
			zap.String("repository", repo.Root),
			zap.String("origin", repo.Origin),
			zap.String("root", project.RootPath),
			zap.String("name", project.Name),
			zap.String("config", URL))
	}
	if URL != "" {
		loaded, err := config.Load(ctx, fs, URL)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if f.severity != "" {
		if _, err := analyzer.ParseSeverity(f.severity); err != nil {
			return nil, err
		}
		if cfg.Rules == nil {
			cfg.Rules = map[string]string{}
		}
		cfg.Rules[analyzer.RuleName] = f.severity
	}
	cfg.Globals = append(cfg.Globals, f.globals...)
	return cfg.Resolve()
}

func formatNames() string {
	names := make([]string, 0, len(report.Formats))
	for _, format := range report.Formats {
		names = append(names, string(format))
	}
	return strings.Join(names, ", ")
}
