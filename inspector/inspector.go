package inspector

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language identifies a tree-sitter grammar
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

// DefaultExtensions lists the file extensions analyzed when no configuration overrides them
var DefaultExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".mts", ".cts", ".tsx"}

// File represents a parsed source file
type File struct {
	Path     string
	Language Language
	Source   []byte
	tree     *sitter.Tree
}

// Root returns the program node
func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// HasError reports whether the parser had to recover from syntax errors
func (f *File) HasError() bool {
	return f.Root().HasError()
}

// Close releases the underlying tree
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
	}
}

// LanguageOf returns grammar for supplied file name
func LanguageOf(filename string) (Language, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript, nil
	case ".ts", ".mts", ".cts":
		return TypeScript, nil
	case ".tsx":
		return TSX, nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
}

func (l Language) grammar() *sitter.Language {
	switch l {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// Parse parses source using the grammar matching the path extension, javascript is used for unknown extensions
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	lang, err := LanguageOf(path)
	if err != nil {
		lang = JavaScript
	}
	return ParseAs(ctx, lang, path, src)
}

// ParseAs parses source with the supplied grammar
func ParseAs(ctx context.Context, lang Language, path string, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang.grammar())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &File{Path: path, Language: lang, Source: src, tree: tree}, nil
}
