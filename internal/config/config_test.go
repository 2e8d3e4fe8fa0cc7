package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env: "test"
wallet_db:
  dsn: "host=db user=wallet dbname=wallet"
reconcile:
  interval: 30s
reference:
  prefix: "TOPUP"
auth:
  jwt_secret: "secret"
banks:
  - code: "mb"
    name: "MB Bank"
    bin: "970422"
    account_no: "0123456789"
    account_name: "STOREFRONT"
  - code: "acb"
    bin: "970416"
    hidden: true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ReadsYAMLAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "host=db user=wallet dbname=wallet", cfg.WalletDB.Dsn)
	assert.Equal(t, "TOPUP", cfg.Reference.Prefix)
	assert.Equal(t, 6, cfg.Reference.Length)
	assert.Equal(t, 30*time.Second, cfg.Reconcile.Interval)
	assert.Equal(t, 2*time.Minute, cfg.Reconcile.GracePeriod)
	assert.Equal(t, 24*time.Hour, cfg.Deposit.MatchWindow)
	assert.Equal(t, "VND", cfg.Deposit.Currency)
	assert.Equal(t, "8080", cfg.HTTPServer.Port)
	assert.False(t, cfg.KafkaService.Enabled)

	require.Len(t, cfg.Banks, 2)
	assert.Equal(t, "970422", cfg.Banks[0].Bin)
	assert.True(t, cfg.Banks[1].Hidden)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("REFERENCE_PREFIX", "NAPTIEN")
	t.Setenv("RECONCILE_INTERVAL", "1m")

	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "NAPTIEN", cfg.Reference.Prefix)
	assert.Equal(t, time.Minute, cfg.Reconcile.Interval)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to find config file")

	// без секрета JWT конфиг не валиден
	_, err = Load(writeConfig(t, "wallet_db:\n  dsn: \"x\"\n"))
	assert.Error(t, err)
}
