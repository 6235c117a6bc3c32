package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "osplugin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  grpc_addr: ":7000"
  http_addr: ":7001"
reconcile:
  interval: 2s
nats:
  url: nats://127.0.0.1:4222
log:
  level: debug
`), 0o600))

	t.Setenv("OSPLUGIN_SERVER_HTTP_ADDR", ":7101")
	t.Setenv("OSPLUGIN_BACKEND_TIMEOUT", "45s")

	cfg, err := Load(newFlags(t, "--config", path, "--log-level", "warn"))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.GRPCAddr, "file overrides default")
	assert.Equal(t, ":7101", cfg.Server.HTTPAddr, "env overrides file")
	assert.Equal(t, "warn", cfg.Log.Level, "flag overrides file")
	assert.Equal(t, 2*time.Second, cfg.Reconcile.Interval)
	assert.Equal(t, 45*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	assert.Equal(t, "osplugin.instances", cfg.NATS.Subject)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Server.GRPCAddr = ""
	cfg.Reconcile.Interval = 0
	cfg.NATS.URL = "nats://x"
	cfg.NATS.Subject = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "server.grpc_addr")
	assert.ErrorContains(t, err, "reconcile.interval")
	assert.ErrorContains(t, err, "nats.subject")
}
