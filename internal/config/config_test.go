package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from the config file", func(t *testing.T) {
		// Given: a config file overriding every field
		path := writeConfig(t, `
log-level: debug
log-file: game.log
frontend: tui
computer-first: true
search:
  workers: 4
marks:
  human: H
  computer: C
  empty: "."
`)

		// When: loading the config
		conf, err := Load(path)

		// Then: every field should come from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "game.log", conf.LogFile)
		assert.Equal(t, FrontendTUI, conf.Frontend)
		assert.True(t, conf.ComputerFirst)
		assert.Equal(t, 4, conf.Search.Workers)
		assert.Equal(t, Marks{Human: "H", Computer: "C", Empty: "."}, conf.Marks)
	})

	t.Run("Falls back to defaults when the file is missing", func(t *testing.T) {
		// Given: a path that does not exist
		path := filepath.Join(t.TempDir(), "missing.yml")

		// When: loading the config
		conf, err := Load(path)

		// Then: the defaults should be applied
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, FrontendConsole, conf.Frontend)
		assert.False(t, conf.ComputerFirst)
		assert.Equal(t, 1, conf.Search.Workers)
		assert.Equal(t, Marks{Human: "X", Computer: "O", Empty: " "}, conf.Marks)
	})

	t.Run("Environment fills in when the file is missing", func(t *testing.T) {
		// Given: environment overrides and no config file
		t.Setenv("FRONTEND", "tui")
		t.Setenv("SEARCH_WORKERS", "3")

		// When: loading the config
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: the environment values should be used
		require.NoError(t, err)
		assert.Equal(t, FrontendTUI, conf.Frontend)
		assert.Equal(t, 3, conf.Search.Workers)
	})

	t.Run("Rejects an unknown frontend", func(t *testing.T) {
		// Given: a config with an unsupported frontend
		path := writeConfig(t, "frontend: web\n")

		// When: loading the config
		_, err := Load(path)

		// Then: ErrUnknownFrontend should be returned
		require.ErrorIs(t, err, ErrUnknownFrontend)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Frontend: FrontendConsole,
			Search:   Search{Workers: 1},
			Marks:    Marks{Human: "X", Computer: "O", Empty: " "},
		}
	}

	t.Run("Accepts a valid config", func(t *testing.T) {
		conf := valid()

		assert.NoError(t, conf.Validate())
	})

	t.Run("Rejects zero workers", func(t *testing.T) {
		conf := valid()
		conf.Search.Workers = 0

		assert.ErrorIs(t, conf.Validate(), ErrInvalidWorkers)
	})

	t.Run("Rejects identical marks", func(t *testing.T) {
		conf := valid()
		conf.Marks.Computer = "X"

		assert.ErrorIs(t, conf.Validate(), ErrInvalidMark)
	})

	t.Run("Rejects multi-character marks", func(t *testing.T) {
		conf := valid()
		conf.Marks.Human = "XX"

		assert.ErrorIs(t, conf.Validate(), ErrInvalidMark)
	})
}
