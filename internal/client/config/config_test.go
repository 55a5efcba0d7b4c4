package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/diplomadesk/internal/client/api"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	assert.Equal(t, 5*time.Minute, c.RefreshBuffer)
	assert.Equal(t, 30*time.Second, c.RefreshTimeout)
	assert.Equal(t, api.DefaultPaths(), c.Paths)
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Chdir(t.TempDir())
	envFile := writeFile(t, "test.env", "DIPLOMADESK_SERVER_URL=http://from-env-file\nDIPLOMADESK_LOG_LEVEL=info\n")
	jsonFile := writeFile(t, "cfg.json", `{"server_url":"http://from-json","refresh_buffer":"2m","durable_path":"json.db"}`)
	t.Setenv("DIPLOMADESK_REFRESH_TIMEOUT", "45")
	t.Setenv("DIPLOMADESK_DURABLE_PATH", "env.db")

	cfg, err := LoadConfig([]string{"-e", envFile, "-c", jsonFile, "-a", "http://from-flag", "-x", "ignored"})
	require.NoError(t, err)

	want := defaults()
	want.ServerURL = "http://from-flag"
	want.LogLevel = "info"
	want.RefreshTimeout = 45 * time.Second
	want.RefreshBuffer = 2 * time.Minute
	want.DurablePath = "json.db"

	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoadConfig_NoSources(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Chdir(t.TempDir())
	bad := writeFile(t, "bad.json", `{ nope`)

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "bad json", args: []string{"-c", bad}},
		{name: "missing json", args: []string{"-c", "missing.json"}},
		{name: "bad flag value", args: []string{"-b", "soon"}},
		{name: "bad env duration", env: map[string]string{"DIPLOMADESK_REFRESH_BUFFER": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(tt.args)
			assert.Error(t, err)
		})
	}
}
