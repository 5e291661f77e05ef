package x_cfg_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_cfg"
	"github.com/rskv-p/fpmine/pkg/x_data"
	"github.com/rskv-p/fpmine/pkg/x_db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fpmine.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(constant.EnvConfigPath, "")

	cfg, err := x_cfg.Load("")
	require.NoError(t, err)
	assert.Equal(t, x_cfg.Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := x_cfg.Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_FileWithEnvExpansion(t *testing.T) {
	t.Setenv("TEST_FP_SECRET", "s3cret")
	path := writeConfig(t, `{
		"data_dir": "/data",
		"min_support": 40,
		"log": {"level": "debug"},
		"db": {"driver": "postgres", "dsn": "host=db user=fp"},
		"nats": {"embedded": true, "port": -1},
		"http": {"addr": ":9090", "jwt_secret": "${TEST_FP_SECRET}", "auth_enabled": true, "token_ttl": "30m"},
		"datasets": [{"name": "basket", "file": "basket.csv", "attributes": []}]
	}`)

	cfg, err := x_cfg.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, 40, cfg.MinSupport)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format, "unset nested keys keep defaults")
	assert.Equal(t, x_db.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "host=db user=fp", cfg.DB.DSN)
	assert.True(t, cfg.Nats.Embedded)
	assert.Equal(t, -1, cfg.Nats.Port)
	assert.Equal(t, constant.DefaultSubject, cfg.Nats.Subject)
	assert.Equal(t, "s3cret", cfg.HTTP.JwtSecret)
	assert.Equal(t, 30*time.Minute, cfg.HTTP.TokenTTL)
	require.Len(t, cfg.Datasets, 1)
	assert.Equal(t, "basket", cfg.Datasets[0].Name)
	assert.NoError(t, cfg.Validate())

	assert.NotContains(t, cfg.String(), "s3cret")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `{"min_support": 3, "http": {"addr": ":1"}}`)
	t.Setenv("FP_MIN_SUPPORT", "7")
	t.Setenv("FP_HTTP_ADDR", ":2")
	t.Setenv("FP_NATS_EMBEDDED", "true")
	t.Setenv("FP_DB_DSN", "/tmp/x.db")

	cfg, err := x_cfg.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MinSupport)
	assert.Equal(t, ":2", cfg.HTTP.Addr)
	assert.True(t, cfg.Nats.Embedded)
	assert.Equal(t, "/tmp/x.db", cfg.DB.DSN)
}

func TestLoad_EnvPath(t *testing.T) {
	path := writeConfig(t, `{"data_dir": "from-env"}`)
	t.Setenv(constant.EnvConfigPath, path)

	cfg, err := x_cfg.Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.DataDir)
}

func TestLoad_BadJSON(t *testing.T) {
	_, err := x_cfg.Load(writeConfig(t, `{bad`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := x_cfg.Default()
	cfg.MinSupport = 0
	cfg.DB.Driver = "oracle"
	cfg.HTTP.AuthEnabled = true
	cfg.Datasets = []x_data.Dataset{{Name: "x"}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_support(0)")
	assert.Contains(t, err.Error(), "db.driver(oracle)")
	assert.Contains(t, err.Error(), "http.jwt_secret")
	assert.Contains(t, err.Error(), "datasets[0]")
}

func TestGetEnv(t *testing.T) {
	t.Setenv("FP_TEST_STR", "hello")
	t.Setenv("FP_TEST_INT", "bad")
	t.Setenv("FP_TEST_BOOL", "yes")

	assert.Equal(t, "hello", x_cfg.GetEnvStr("FP_TEST_STR", "d"))
	assert.Equal(t, "d", x_cfg.GetEnvStr("FP_TEST_MISSING", "d"))
	assert.Equal(t, 42, x_cfg.GetEnvInt("FP_TEST_INT", 42))
	assert.True(t, x_cfg.GetEnvBool("FP_TEST_BOOL", false))
	assert.True(t, x_cfg.GetEnvBool("FP_TEST_MISSING", true))
}
