package x_bus

import (
	"fmt"
	"time"

	"github.com/rskv-p/fpmine/pkg/x_log"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// StartEmbedded runs an in-process NATS server.
func StartEmbedded(host string, port int) (*server.Server, error) {
	opts := &server.Options{
		Host:   host,
		Port:   port,
		NoLog:  true,
		NoSigs: true,
	}
	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("nats-server init: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		return nil, fmt.Errorf("nats-server not ready")
	}

	x_log.Info().Str("url", ns.ClientURL()).Msg("embedded nats started")
	return ns, nil
}

// Connect dials url.
func Connect(url string, opts ...nats.Option) (*nats.Conn, error) {
	opts = append([]nats.Option{nats.Name("fpmine")}, opts...)
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	return nc, nil
}

// Open connects as configured, starting an embedded server first when
// requested. The returned func closes both.
func Open(cfg Config) (*nats.Conn, func(), error) {
	cfg.ApplyDefaults()

	if !cfg.Embedded {
		nc, err := Connect(cfg.URL)
		if err != nil {
			return nil, nil, err
		}
		return nc, nc.Close, nil
	}

	ns, err := StartEmbedded(cfg.Host, cfg.Port)
	if err != nil {
		return nil, nil, err
	}
	nc, err := Connect(ns.ClientURL())
	if err != nil {
		ns.Shutdown()
		return nil, nil, err
	}
	return nc, func() {
		nc.Close()
		ns.Shutdown()
	}, nil
}
