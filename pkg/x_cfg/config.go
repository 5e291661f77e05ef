// Package x_cfg loads the fpmine configuration from JSON with ${VAR}
// expansion and FP_* environment overrides.
package x_cfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_bus"
	"github.com/rskv-p/fpmine/pkg/x_data"
	"github.com/rskv-p/fpmine/pkg/x_db"
	"github.com/rskv-p/fpmine/pkg/x_log"

	"github.com/mitchellh/mapstructure"
)

//---------------------
// Config
//---------------------

// Config is the full application configuration.
type Config struct {
	DataDir    string           `json:"data_dir" mapstructure:"data_dir"`
	MinSupport int              `json:"min_support" mapstructure:"min_support"`
	Log        x_log.Config     `json:"log" mapstructure:"log"`
	DB         x_db.Config      `json:"db" mapstructure:"db"`
	Nats       x_bus.Config     `json:"nats" mapstructure:"nats"`
	HTTP       HTTPConfig       `json:"http" mapstructure:"http"`
	Datasets   []x_data.Dataset `json:"datasets" mapstructure:"datasets"`
}

// HTTPConfig configures the mining API.
type HTTPConfig struct {
	Addr        string        `json:"addr" mapstructure:"addr"`
	JwtSecret   string        `json:"jwt_secret" mapstructure:"jwt_secret"`
	AuthEnabled bool          `json:"auth_enabled" mapstructure:"auth_enabled"`
	TokenTTL    time.Duration `json:"token_ttl" mapstructure:"token_ttl"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:    constant.DefaultDataDir,
		MinSupport: constant.DefaultMinSupport,
		Log:        x_log.DefaultConfig(),
		DB:         x_db.DefaultConfig(),
		Nats:       x_bus.DefaultConfig(),
		HTTP: HTTPConfig{
			Addr:     constant.DefaultHTTPAddr,
			TokenTTL: 12 * time.Hour,
		},
	}
}

//---------------------
// Loading
//---------------------

// Load reads the config file at path. An empty path falls back to FP_CONFIG
// and then ./fpmine.json; a missing default file yields the defaults.
// FP_* variables override file values.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = GetEnvStr(constant.EnvConfigPath, constant.DefaultConfigFile)
		explicit = os.Getenv(constant.EnvConfigPath) != ""
	}

	raw := map[string]any{}

	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		data = replaceEnvVars(data)
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse config json %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// defaults only
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	applyEnv(raw, constant.EnvPrefix)

	cfg := Default()
	if err := Decode(raw, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges a loosely typed map into cfg. Strings are converted to
// numbers, booleans and durations where the target needs them.
func Decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

//---------------------
// Validation
//---------------------

// Validate checks config for required values.
func (cfg *Config) Validate() error {
	var bad []string
	if cfg.MinSupport < 1 {
		bad = append(bad, fmt.Sprintf("min_support(%d)", cfg.MinSupport))
	}
	if cfg.DataDir == "" {
		bad = append(bad, "data_dir")
	}
	switch x_db.Driver(strings.ToLower(string(cfg.DB.Driver))) {
	case "", x_db.DriverSqlite, "sqlite3", x_db.DriverPostgres, "postgresql":
	default:
		bad = append(bad, fmt.Sprintf("db.driver(%s)", cfg.DB.Driver))
	}
	if cfg.HTTP.AuthEnabled && cfg.HTTP.JwtSecret == "" {
		bad = append(bad, "http.jwt_secret")
	}
	for i, d := range cfg.Datasets {
		if d.Name == "" || d.File == "" {
			bad = append(bad, fmt.Sprintf("datasets[%d]", i))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(bad, ", "))
	}
	return nil
}

// String renders cfg as indented JSON with the JWT secret masked.
func (cfg *Config) String() string {
	c := *cfg
	if c.HTTP.JwtSecret != "" {
		c.HTTP.JwtSecret = "***"
	}
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
