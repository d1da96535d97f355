package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) Config {
	t.Helper()
	cfg := Config{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindCommon(fs, &cfg)
	BindServer(fs, &cfg)
	BindClient(fs, &cfg)
	require.NoError(t, fs.Parse(args))
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := parse(t)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "http://localhost:8080", cfg.Url())
	assert.Equal(t, "chowmate.sqlite", cfg.DBUrl)
	assert.Equal(t, 30*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, 800*time.Millisecond, cfg.AutoAdvanceDelay)
	assert.False(t, cfg.StrictTypes)
	assert.Equal(t, "http://localhost:8080", cfg.ShareBase())
}

func TestEnvironmentSetsDefaults(t *testing.T) {
	t.Setenv("CHOWMATE_PORT", "9000")
	t.Setenv("CHOWMATE_STRICT_TYPES", "yes")
	t.Setenv("CHOWMATE_SUBMIT_TIMEOUT", "5s")
	t.Setenv("CHOWMATE_PUBLIC_URL", "https://chowmate.example")

	cfg := parse(t)
	assert.Equal(t, uint(9000), cfg.Port)
	assert.True(t, cfg.StrictTypes)
	assert.Equal(t, 5*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, "https://chowmate.example", cfg.ShareBase())
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("CHOWMATE_PORT", "9000")
	cfg := parse(t, "--port", "9100", "--host", "127.0.0.1")
	assert.Equal(t, "http://127.0.0.1:9100", cfg.Url())
}

func TestBadEnvironmentValueFallsBack(t *testing.T) {
	t.Setenv("CHOWMATE_SUBMIT_TIMEOUT", "soon")
	cfg := parse(t)
	assert.Equal(t, 30*time.Second, cfg.SubmitTimeout)
}

func TestValidateServer(t *testing.T) {
	cfg := parse(t)
	assert.Error(t, cfg.ValidateServer())

	cfg = parse(t, "--token-secret", "s3cret")
	assert.NoError(t, cfg.ValidateServer())
}
