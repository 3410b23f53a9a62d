package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every setting for the test; t.Setenv restores the old values.
func clearEnv(t *testing.T) {
	for _, k := range []string{ENV_INPUT, ENV_OUTPUT_DIR, ENV_TEXT_COLUMN, ENV_OPEN_REPORT, ENV_STRIP_MARKDOWN, ENV_LOG_LEVEL} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", s.InputPath)
	assert.Equal(t, ".", s.OutputDir)
	assert.Equal(t, "tweet_text", s.TextColumn)
	assert.Equal(t, "info", s.LogLevel)
	assert.True(t, s.OpenReport)
	assert.True(t, s.StripMarkdown)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(ENV_INPUT, "posts.csv")
	t.Setenv(ENV_OUTPUT_DIR, "/tmp/out")
	t.Setenv(ENV_TEXT_COLUMN, "body")
	t.Setenv(ENV_OPEN_REPORT, "false")
	t.Setenv(ENV_STRIP_MARKDOWN, "0")
	t.Setenv(ENV_LOG_LEVEL, "debug")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, &Settings{
		InputPath:     "posts.csv",
		OutputDir:     "/tmp/out",
		TextColumn:    "body",
		OpenReport:    false,
		StripMarkdown: false,
		LogLevel:      "debug",
	}, s)
}

func TestLoad_InvalidBool(t *testing.T) {
	clearEnv(t)
	t.Setenv(ENV_OPEN_REPORT, "sometimes")

	_, err := Load()
	assert.Error(t, err)
}

func TestApply_OverridesWin(t *testing.T) {
	clearEnv(t)
	t.Setenv(ENV_INPUT, "env.csv")
	t.Setenv(ENV_OUTPUT_DIR, "env-out")

	s, err := Load()
	require.NoError(t, err)

	no := false
	s.Apply(Overrides{InputPath: "flag.csv", OpenReport: &no})

	assert.Equal(t, "flag.csv", s.InputPath)
	assert.Equal(t, "env-out", s.OutputDir)
	assert.False(t, s.OpenReport)
}

func TestValidate(t *testing.T) {
	valid := Settings{InputPath: "a.csv", OutputDir: ".", TextColumn: "tweet_text"}
	assert.NoError(t, valid.Validate())

	noInput := valid
	noInput.InputPath = " "
	assert.ErrorIs(t, noInput.Validate(), ErrNoInput)

	noOut := valid
	noOut.OutputDir = ""
	assert.ErrorIs(t, noOut.Validate(), ErrNoOutputDir)

	noCol := valid
	noCol.TextColumn = ""
	assert.ErrorIs(t, noCol.Validate(), ErrNoTextColumn)
}

func TestLoadEnv_ReadsEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config", "envs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "envs", ".env.test"),
		[]byte(ENV_TEXT_COLUMN+"=from_file\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	LoadEnv("test")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from_file", s.TextColumn)
}
