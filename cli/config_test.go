package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestParseConfig(t *testing.T) {
	data := []byte(`requires: v0.1.0
inputs:
  - "templates/*.splice"
  - "extra.go.splice"
output: gen
format: false
`)
	cfg, err := ParseConfig(".splice.yaml", data)
	require.NoError(t, err)

	want := &Config{
		Requires: "v0.1.0",
		Inputs:   []string{"templates/*.splice", "extra.go.splice"},
		Output:   "gen",
		Format:   boolPtr(false),
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, cfg.FormatEnabled())
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(".splice.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Inputs)
	assert.True(t, cfg.FormatEnabled())
}

func TestParseConfigRejectsUnknownField(t *testing.T) {
	_, err := ParseConfig(".splice.yaml", []byte("colour: red\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestParseConfigRejectsWrongType(t *testing.T) {
	_, err := ParseConfig(".splice.yaml", []byte("inputs: lonely\n"))
	require.Error(t, err)
}

func TestConfigRequires(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"satisfied", "requires: v0.1.0\n", ""},
		{"prefix added", "requires: 0.1.0\n", ""},
		{"equal version", "requires: " + Version + "\n", ""},
		{"too new", "requires: v9.9.9\n", "requires splice v9.9.9 or newer"},
		{"not semver", "requires: banana\n", "not a valid semantic version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(".splice.yaml", []byte(tt.doc))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: build\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "build", cfg.Output)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestLoadConfigMissingDefault(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Output)
	assert.True(t, cfg.FormatEnabled())
}
