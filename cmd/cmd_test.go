package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSource = "async function save(trx) {\n  await Person.query().insert({});\n}\n"

func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		location := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
	return root
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	rootCmd := NewRootCommand()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestLint_Findings(t *testing.T) {
	root := newProject(t, map[string]string{
		"package.json":  `{"name": "people"}`,
		"src/person.js": personSource,
	})
	stdout, _, err := run(t, "lint", root)
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitFindings, exitErr.Code)
	assert.Contains(t, stdout, filepath.Join(root, "src", "person.js"))
	assert.Contains(t, stdout, "2:9  error  `trx` is in scope but not passed to Person.query()")
	assert.Contains(t, stdout, "1 problem (1 error, 0 warnings)")
}

func TestLint_DetectedConfig(t *testing.T) {
	root := newProject(t, map[string]string{
		"package.json":  `{"name": "people"}`,
		".trxlint.yaml": "extends: [recommended]\nrules:\n  trx-forwarding: warn\n",
		"src/person.js": personSource,
	})
	stdout, _, err := run(t, "lint", "--format", "json", root)
	require.NoError(t, err)
	var decoded struct {
		Summary struct {
			Errors   int `json:"errors"`
			Warnings int `json:"warnings"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, 0, decoded.Summary.Errors)
	assert.Equal(t, 1, decoded.Summary.Warnings)
}

func TestLint_Fix(t *testing.T) {
	root := newProject(t, map[string]string{"src/person.js": personSource})
	output := filepath.Join(t.TempDir(), "report.yaml")
	_, _, err := run(t, "lint", "--fix", "--format", "yaml", "--output", output, root)
	require.NoError(t, err)

	fixed, err := os.ReadFile(filepath.Join(root, "src", "person.js"))
	require.NoError(t, err)
	assert.Equal(t, "async function save(trx) {\n  await Person.query(trx).insert({});\n}\n", string(fixed))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fixed: 1")
}

func TestLint_Overrides(t *testing.T) {
	root := newProject(t, map[string]string{"src/person.js": personSource})
	stdout, _, err := run(t, "lint", "--severity", "off", root)
	require.NoError(t, err)
	assert.Equal(t, "", stdout)

	configFile := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("extends: [recommended]\nsourceType: script\n"), 0o644))
	script := newProject(t, map[string]string{"job.js": "var trx = knex.transaction();\nfunction save() { Model.query(); }\n"})
	_, _, err = run(t, "lint", "--config", configFile, script)
	require.NoError(t, err)
}

func TestLint_OperationalErrors(t *testing.T) {
	root := newProject(t, map[string]string{"src/person.js": personSource})
	for _, args := range [][]string{
		{"lint", "--format", "sarif", root},
		{"lint", "--severity", "fatal", root},
		{"lint", "--config", filepath.Join(root, "missing.yaml"), root},
		{"lint", filepath.Join(root, "missing")},
		{"lint", "--log-level", "chatty", root},
	} {
		_, _, err := run(t, args...)
		require.Error(t, err, args)
		var exitErr *ExitError
		assert.False(t, errors.As(err, &exitErr), args)
	}
}

func TestExecute(t *testing.T) {
	root := newProject(t, map[string]string{"clean.js": "function save(trx) { Model.query(trx); }\n"})
	assert.Equal(t, ExitOK, Execute(context.Background(), "lint", root))
	assert.Equal(t, ExitFailure, Execute(context.Background(), "lint", "--format", "sarif", root))

	dirty := newProject(t, map[string]string{"dirty.js": personSource})
	assert.Equal(t, ExitFindings, Execute(context.Background(), "lint", dirty))
}

func TestRules(t *testing.T) {
	stdout, _, err := run(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, stdout, "trx-forwarding (fixable)")
	assert.Contains(t, stdout, "missingTrxFetchGraph")
	assert.Contains(t, stdout, "$fetchGraph()")
	assert.Contains(t, stdout, "recommended")
}

func TestLint_RepositoryLogged(t *testing.T) {
	root := newProject(t, map[string]string{
		".git/config":  "[remote \"origin\"]\n\turl = git@github.com:acme/people.git\n",
		"src/clean.js": "function save(trx) { Model.query(trx); }\n",
	})
	_, stderr, err := run(t, "lint", "--log-level", "debug", "--log-format", "json", root)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"detected project"`)
	assert.Contains(t, stderr, `"kind":"git"`)
	assert.Contains(t, stderr, `"origin":"git@github.com:acme/people.git"`)
	assert.Contains(t, stderr, `"name":"people"`)
}

func TestLint_FormatHelp(t *testing.T) {
	stdout, _, err := run(t, "lint", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "report format: text, yaml, json")
}
