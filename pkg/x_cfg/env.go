// file: fpmine/pkg/x_cfg/env.go
package x_cfg

import (
	"os"
	"strconv"
	"strings"
)

// GetEnvStr returns string env var or fallback.
func GetEnvStr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetEnvInt returns int env var or fallback.
func GetEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// GetEnvBool returns bool env var or fallback.
func GetEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return fallback
}

// replaceEnvVars expands ${VAR} references.
func replaceEnvVars(data []byte) []byte {
	return []byte(os.Expand(string(data), os.Getenv))
}

// envOverrides maps FP_* variables onto config keys.
var envOverrides = []struct {
	env  string
	path []string
}{
	{"DATA_DIR", []string{"data_dir"}},
	{"MIN_SUPPORT", []string{"min_support"}},
	{"LOG_LEVEL", []string{"log", "level"}},
	{"LOG_FORMAT", []string{"log", "format"}},
	{"DB_DRIVER", []string{"db", "driver"}},
	{"DB_DSN", []string{"db", "dsn"}},
	{"NATS_URL", []string{"nats", "url"}},
	{"NATS_SUBJECT", []string{"nats", "subject"}},
	{"NATS_EMBEDDED", []string{"nats", "embedded"}},
	{"HTTP_ADDR", []string{"http", "addr"}},
	{"JWT_SECRET", []string{"http", "jwt_secret"}},
	{"AUTH_ENABLED", []string{"http", "auth_enabled"}},
}

// applyEnv writes set prefix+name variables into raw.
func applyEnv(raw map[string]any, prefix string) {
	for _, o := range envOverrides {
		v, ok := os.LookupEnv(prefix + o.env)
		if !ok {
			continue
		}
		m := raw
		for _, k := range o.path[:len(o.path)-1] {
			next, ok := m[k].(map[string]any)
			if !ok {
				next = map[string]any{}
				m[k] = next
			}
			m = next
		}
		m[o.path[len(o.path)-1]] = v
	}
}
