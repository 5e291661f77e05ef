package x_db

import (
	"fmt"
	"strings"

	"github.com/rskv-p/fpmine/constant"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//---------------------
// Database Config
//---------------------

// Driver names a supported SQL backend.
type Driver string

const (
	DriverSqlite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Config contains the parameters for opening the run store.
type Config struct {
	Driver    Driver `json:"driver" mapstructure:"driver"`       // sqlite | postgres
	DSN       string `json:"dsn" mapstructure:"dsn"`             // file path or postgres DSN
	LogLevel  string `json:"log_level" mapstructure:"log_level"` // silent | error | warn | info
	BatchSize int    `json:"batch_size" mapstructure:"batch_size"`
}

var defaultCfg = Config{
	Driver:    DriverSqlite,
	DSN:       constant.DefaultDBFile,
	LogLevel:  "warn",
	BatchSize: 500,
}

// DefaultConfig returns the sqlite defaults.
func DefaultConfig() Config {
	return defaultCfg
}

// ApplyDefaults fills missing values.
func (c *Config) ApplyDefaults() {
	switch Driver(strings.ToLower(string(c.Driver))) {
	case "":
		c.Driver = defaultCfg.Driver
	case DriverSqlite, "sqlite3":
		c.Driver = DriverSqlite
	case DriverPostgres, "postgresql":
		c.Driver = DriverPostgres
	}
	if c.DSN == "" && c.Driver == DriverSqlite {
		c.DSN = defaultCfg.DSN
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultCfg.LogLevel
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaultCfg.BatchSize
	}
}

// dialector selects the GORM driver for c.
func (c Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverSqlite:
		return sqlite.Open(c.DSN), nil
	case DriverPostgres:
		if c.DSN == "" {
			return nil, fmt.Errorf("postgres: empty dsn")
		}
		return postgres.Open(c.DSN), nil
	default:
		return nil, fmt.Errorf("%w: %q", constant.ErrUnknownDriver, c.Driver)
	}
}

// gormLevel maps a level name to the GORM logger level.
func gormLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent", "off":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}
