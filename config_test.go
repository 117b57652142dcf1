package symtree_test

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	symtree "github.com/njchilds90/symtree"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := symtree.DefaultConfig()
	assert.Equal(t, "x", cfg.Variable)
	assert.Equal(t, symtree.DefaultMaxRewrites, cfg.MaxRewrites)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeConfig(t, "symtree.toml", `
variable = "t"
max_rewrites = 500

[log]
level = "debug"
format = "json"
`)
	cfg, err := symtree.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "t", cfg.Variable)
	assert.Equal(t, 500, cfg.MaxRewrites)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_YAMLKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "symtree.yml", "variable: w\n")
	cfg, err := symtree.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "w", cfg.Variable)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"unknown extension", "symtree.ini", "variable = t"},
		{"malformed toml", "bad.toml", "variable = "},
		{"malformed yaml", "bad.yaml", "variable: [w"},
		{"empty variable", "empty.toml", `variable = ""`},
		{"negative bound", "neg.yaml", "max_rewrites: -3\n"},
		{"bad level", "level.toml", "[log]\nlevel = \"loud\"\n"},
		{"bad format", "format.yaml", "log:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := symtree.LoadConfig(writeConfig(t, tt.file, tt.body))
			assert.ErrorIs(t, err, symtree.ErrInvalidConfig)
		})
	}

	_, err := symtree.LoadConfig("  ")
	assert.ErrorIs(t, err, symtree.ErrInvalidConfig)

	_, err = symtree.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParseConfig_Auto(t *testing.T) {
	_, err := symtree.ParseConfig([]byte(`variable = "t"`), symtree.FormatAuto)
	assert.ErrorIs(t, err, symtree.ErrInvalidConfig)
	assert.Equal(t, "yaml", symtree.FormatYAML.String())
}

func TestConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	cfg := symtree.DefaultConfig()
	cfg.Log.Format = "json"
	log := cfg.Logger(&buf)
	log.Debug("hidden")
	log.Info("shown", "k", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.EqualValues(t, 1, rec["k"])
}

func TestConfig_BuildsAnalyzers(t *testing.T) {
	var buf bytes.Buffer
	cfg := symtree.DefaultConfig()
	cfg.Variable = "y"
	cfg.Log.Level = "debug"

	d := cfg.Differentiator(&buf)
	df, err := d.Differentiate(symtree.MulOf(x, y), cfg.Context(nil))
	require.NoError(t, err)

	got, err := cfg.Simplifier(&buf).Analyze(df)
	require.NoError(t, err)
	requireEqualTree(t, x, got)
	assert.Contains(t, buf.String(), "rewrite")

	cfg.MaxRewrites = 1
	_, err = cfg.Simplifier(&buf).Analyze(symtree.AddOf(df, n(0)))
	assert.ErrorIs(t, err, symtree.ErrRewriteLimit)
}
