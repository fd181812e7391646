package analyzer_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/viant/trxlint/analyzer"
)

// fixture is a txtar archive holding input.<ext>, output.<ext> and an optional list of remaining message ids
type fixture struct {
	path      string
	input     []byte
	output    []byte
	remaining []string
}

func loadFixture(t *testing.T, name string) *fixture {
	t.Helper()
	archive, err := txtar.ParseFile(name)
	require.NoError(t, err)
	ret := &fixture{}
	for _, file := range archive.Files {
		base := strings.TrimSuffix(file.Name, filepath.Ext(file.Name))
		switch base {
		case "input":
			ret.path = file.Name
			ret.input = file.Data
		case "output":
			ret.output = file.Data
		case "remaining":
			ret.remaining = strings.Fields(string(file.Data))
		}
	}
	require.NotNil(t, ret.input, "input missing in %s", name)
	require.NotNil(t, ret.output, "output missing in %s", name)
	return ret
}

func TestAnalyzer_Fix(t *testing.T) {
	names, err := filepath.Glob(filepath.Join("testdata", "fix", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		t.Run(filepath.Base(name), func(t *testing.T) {
			ctx := context.Background()
			fx := loadFixture(t, name)
			lint := analyzer.New()

			result, err := lint.Fix(ctx, fx.path, fx.input)
			require.NoError(t, err)
			assert.Equal(t, string(fx.output), string(result.Source))
			assert.Equal(t, string(fx.input) != string(fx.output), result.Changed)

			var remaining []string
			for _, finding := range result.Findings {
				remaining = append(remaining, finding.MessageID)
				assert.False(t, finding.Fixable(), "fixable finding left: %s", finding.Snippet)
			}
			assert.Equal(t, fx.remaining, remaining)

			// applying the fix again is a no-op
			again, err := lint.Fix(ctx, fx.path, result.Source)
			require.NoError(t, err)
			assert.False(t, again.Changed)
			assert.Equal(t, 0, again.Applied)
		})
	}
}

func TestAnalyzer_FixPassLimit(t *testing.T) {
	src := []byte("async function save(trx) { await Person.query().findById(1).$relatedQuery('pets'); }")
	result, err := analyzer.New(analyzer.WithMaxFixPasses(1)).Fix(context.Background(), "save.js", src)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Passes)
	assert.Equal(t, 2, result.Applied)
	assert.Empty(t, result.Findings)
}
