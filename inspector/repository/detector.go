package repository

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	json "github.com/json-iterator/go"
	"github.com/viant/afs"
)

// ConfigFiles lists lint configuration file names in lookup order
var ConfigFiles = []string{".trxlint.yaml", ".trxlint.yml"}

// Detector identifies project root folders and provides project-related information
type Detector struct {
	fs      afs.Service
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		fs: afs.New(),
		markers: []string{
			"package.json",  // Node projects
			"tsconfig.json", // TypeScript projects without a manifest
			".git",          // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(ctx context.Context, filePath string) (*Project, error) {
	absPath, startDir, err := d.startDir(filePath)
	if err != nil {
		return nil, err
	}
	rootPath, projectType := d.findProjectRoot(ctx, startDir)
	info := &Project{
		Type:     "unknown",
		RootPath: startDir,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}
	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	info.Name = d.extractProjectName(ctx, info.RootPath, info.Type)
	info.ConfigPath = d.FindConfig(ctx, startDir, info.RootPath)
	return info, nil
}

// DetectRepository identifies the repository containing the given file path
func (d *Detector) DetectRepository(ctx context.Context, filePath string) (*Repository, error) {
	_, startDir, err := d.startDir(filePath)
	if err != nil {
		return nil, err
	}
	info, err := d.DetectProject(ctx, filePath)
	if err != nil {
		return nil, err
	}
	if gitRoot := d.findGitRoot(ctx, startDir); gitRoot != "" {
		return &Repository{
			Kind:   "git",
			Root:   gitRoot,
			Origin: d.extractGitOrigin(ctx, gitRoot),
			Info:   info,
		}, nil
	}
	return &Repository{
		Kind: info.Type,
		Root: info.RootPath,
		Info: info,
	}, nil
}

// FindConfig returns the closest configuration file between startDir and stopDir (inclusive)
func (d *Detector) FindConfig(ctx context.Context, startDir, stopDir string) string {
	dir := startDir
	for {
		for _, name := range ConfigFiles {
			candidate := filepath.Join(dir, name)
			if ok, _ := d.fs.Exists(ctx, candidate); ok {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if dir == stopDir || parent == dir {
			return ""
		}
		dir = parent
	}
}

func (d *Detector) startDir(filePath string) (string, string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", "", err
	}
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return "", "", err
	}
	if fileInfo.IsDir() {
		return absPath, absPath, nil
	}
	return absPath, filepath.Dir(absPath), nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(ctx context.Context, startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if ok, _ := d.fs.Exists(ctx, filepath.Join(dir, marker)); ok {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// findGitRoot finds the root of the git repository containing the given directory
func (d *Detector) findGitRoot(ctx context.Context, startDir string) string {
	dir := startDir
	homeDir := os.Getenv("HOME")
	for {
		if ok, _ := d.fs.Exists(ctx, filepath.Join(dir, ".git")); ok {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || parent == homeDir {
			return ""
		}
		dir = parent
	}
}

// extractGitOrigin extracts the origin URL from git config
func (d *Detector) extractGitOrigin(ctx context.Context, gitRoot string) string {
	data, err := d.fs.DownloadWithURL(ctx, filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			foundRemote = line == `[remote "origin"]`
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url") {
			if _, url, ok := strings.Cut(line, "="); ok {
				return strings.TrimSpace(url)
			}
		}
	}
	return ""
}

type manifest struct {
	Name string `json:"name"`
}

// extractProjectName attempts to extract a project name from configuration files
func (d *Detector) extractProjectName(ctx context.Context, rootPath string, projectType string) string {
	switch projectType {
	case "javascript":
		data, err := d.fs.DownloadWithURL(ctx, filepath.Join(rootPath, "package.json"))
		if err != nil {
			break
		}
		pkg := &manifest{}
		if err = json.Unmarshal(data, pkg); err == nil && pkg.Name != "" {
			return pkg.Name
		}
	case "git":
		if origin := d.extractGitOrigin(ctx, rootPath); origin != "" {
			origin = strings.TrimSuffix(origin, ".git")
			if idx := strings.LastIndexAny(origin, "/:"); idx != -1 {
				return origin[idx+1:]
			}
		}
	}
	return filepath.Base(rootPath)
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "package.json":
		return "javascript"
	case "tsconfig.json":
		return "typescript"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
