package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/viant/trxlint/analyzer"
	"github.com/viant/trxlint/config"
	"github.com/viant/trxlint/inspector"
	"github.com/viant/trxlint/report"
)

// Runner lints source trees
type Runner struct {
	fs          afs.Service
	config      *config.Config
	analyzer    *analyzer.Analyzer
	logger      *zap.Logger
	concurrency int
	fix         bool
}

// source represents a file collected while walking
type source struct {
	URL  string
	Path string
	Mode os.FileMode
	Data []byte
}

// New creates a runner for resolved configuration
func New(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		fs:          afs.New(),
		config:      cfg,
		logger:      zap.NewNop(),
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.analyzer = analyzer.New(cfg.AnalyzerOptions()...)
	return r
}

// Run lints files under supplied locations, fixed sources are written back when fix mode is on
func (r *Runner) Run(ctx context.Context, locations ...string) (*report.Report, error) {
	var sources []*source
	for _, location := range locations {
		collected, err := r.collect(ctx, location)
		if err != nil {
			return nil, err
		}
		sources = append(sources, collected...)
	}
	r.logger.Debug("collected sources", zap.Int("count", len(sources)))

	var mux sync.Mutex
	files := make([]*report.File, 0, len(sources))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.concurrency)
	for _, src := range sources {
		src := src
		group.Go(func() error {
			result, err := r.lint(groupCtx, src)
			if err != nil {
				return err
			}
			mux.Lock()
			files = append(files, result)
			mux.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return report.New(files...), nil
}

func (r *Runner) lint(ctx context.Context, src *source) (*report.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := r.logger.With(zap.String("path", src.Path))
	parsed, err := inspector.Parse(ctx, src.Path, src.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", src.Path, err)
	}
	syntaxErr := parsed.HasError()
	findings := r.analyzer.Analyze(parsed)
	parsed.Close()
	if syntaxErr {
		logger.Warn("source contains syntax errors, analysis may be incomplete")
	}

	var fixed *analyzer.FixResult
	if r.fix && hasFixable(findings) {
		if fixed, err = r.analyzer.Fix(ctx, src.Path, src.Data); err != nil {
			return nil, fmt.Errorf("failed to fix %v: %w", src.Path, err)
		}
		findings = fixed.Findings
		if fixed.Changed {
			mode := src.Mode.Perm()
			if mode == 0 {
				mode = file.DefaultFileOsMode
			}
			if err = r.fs.Upload(ctx, src.URL, mode, bytes.NewReader(fixed.Source)); err != nil {
				return nil, fmt.Errorf("failed to write %v: %w", src.Path, err)
			}
			logger.Info("applied fixes", zap.Int("edits", fixed.Applied), zap.Int("passes", fixed.Passes))
		}
	}
	result, err := report.NewFile(src.Path, findings)
	if err != nil {
		return nil, err
	}
	result.SyntaxErr = syntaxErr
	if fixed != nil {
		result.Fixed = fixed.Changed
		result.FixApplied = fixed.Applied
	}
	logger.Debug("analyzed", zap.Int("findings", len(findings)))
	return result, nil
}

// collect downloads matching files under location, location may point at a single file
func (r *Runner) collect(ctx context.Context, location string) ([]*source, error) {
	if !strings.Contains(location, "://") {
		abs, err := filepath.Abs(location)
		if err != nil {
			return nil, err
		}
		location = abs
	}
	object, err := r.fs.Object(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %v: %w", location, err)
	}
	if !object.IsDir() {
		data, err := r.fs.Download(ctx, object)
		if err != nil {
			return nil, fmt.Errorf("failed to read %v: %w", location, err)
		}
		return []*source{{URL: object.URL(), Path: url.Path(object.URL()), Mode: object.Mode(), Data: data}}, nil
	}

	var sources []*source
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			if r.config.Excluded(info.Name()) {
				r.logger.Debug("skipping directory", zap.String("dir", path.Join(parent, info.Name())))
				return false, nil
			}
			return true, nil
		}
		if !r.config.Matches(info.Name()) || r.excludedParent(parent) {
			return true, nil
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return false, err
		}
		URL := url.Join(baseURL, path.Join(parent, info.Name()))
		sources = append(sources, &source{URL: URL, Path: url.Path(URL), Mode: info.Mode(), Data: data})
		return true, nil
	}
	if err = r.fs.Walk(ctx, location, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %v: %w", location, err)
	}
	return sources, nil
}

func (r *Runner) excludedParent(parent string) bool {
	for _, segment := range strings.Split(parent, "/") {
		if segment != "" && r.config.Excluded(segment) {
			return true
		}
	}
	return false
}

func hasFixable(findings []*analyzer.Finding) bool {
	for _, finding := range findings {
		if finding.Fixable() {
			return true
		}
	}
	return false
}
