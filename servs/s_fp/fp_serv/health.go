package fp_serv

import (
	"context"
	"os"

	"github.com/rskv-p/fpmine/constant"
)

// HealthProbe is a function that returns key + status.
type HealthProbe func(ctx context.Context) (key string, status int, info any)

// RegisterHealthProbe adds a custom health-check function.
func (s *Service) RegisterHealthProbe(probe HealthProbe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.probes = append(s.probes, probe)
}

// StatusText names a health status.
func StatusText(status int) string {
	switch status {
	case constant.StatusOK:
		return "ok"
	case constant.StatusWarning:
		return "warning"
	default:
		return "critical"
	}
}

// Health evaluates the store, the bus, the data directory and registered
// probes. The worst status wins.
func (s *Service) Health(ctx context.Context) (int, map[string]any) {
	status := constant.StatusOK
	feedback := make(map[string]any)

	// --- Store ---
	if s.store != nil {
		info := "ok"
		sqlDB, err := s.store.DB().DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			info = err.Error()
			status = max(status, constant.StatusCritical)
		}
		feedback[constant.StoreKey] = info
	}

	// --- Bus ---
	if s.nc != nil {
		feedback[constant.BusKey] = s.nc.Status().String()
		if !s.nc.IsConnected() {
			status = max(status, constant.StatusWarning)
		}
	}

	// --- Data directory ---
	if _, err := os.Stat(s.cfg.DataDir); err != nil {
		feedback[constant.DataDirKey] = "missing: " + s.cfg.DataDir
		status = max(status, constant.StatusWarning)
	}

	// --- Custom Health Probes ---
	s.mu.RLock()
	probes := append([]HealthProbe(nil), s.probes...)
	s.mu.RUnlock()
	for _, probe := range probes {
		key, st, info := probe(ctx)
		if key == "" {
			continue
		}
		status = max(status, min(st, constant.StatusCritical))
		feedback[key] = info
	}

	return status, feedback
}
