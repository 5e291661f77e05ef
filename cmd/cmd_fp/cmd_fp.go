// Package cmd_fp holds the fpmine subcommands.
package cmd_fp

import (
	"fmt"

	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_bus"
	"github.com/rskv-p/fpmine/pkg/x_cfg"
	"github.com/rskv-p/fpmine/pkg/x_db"
	"github.com/rskv-p/fpmine/pkg/x_log"
	"github.com/rskv-p/fpmine/servs/s_fp/fp_serv"

	"github.com/spf13/cobra"
)

var (
	// ConfigPath and LogLevel are bound to the root persistent flags.
	ConfigPath string
	LogLevel   string

	cfg      *x_cfg.Config
	commands []*cobra.Command
)

// Commands returns every subcommand for the root command.
func Commands() []*cobra.Command {
	return commands
}

func register(c ...*cobra.Command) {
	commands = append(commands, c...)
}

// Setup loads the configuration and initialises logging.
func Setup() error {
	c, err := x_cfg.Load(ConfigPath)
	if err != nil {
		return err
	}
	if LogLevel != "" {
		c.Log.Level = LogLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	x_log.InitWithConfig(&cfg.Log, constant.AppName)
	x_log.Debug().Str("config", ConfigPath).Msg("config loaded")
	return nil
}

// Teardown flushes the log file.
func Teardown() {
	_ = x_log.Close()
}

//---------------------
// Backends
//---------------------

// backends are the optional collaborators a command opened.
type backends struct {
	store   *x_db.Store
	closers []func()
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// openService builds the mining service, opening the store and the bus
// when asked for.
func openService(withStore, withBus bool) (*fp_serv.Service, *backends, error) {
	b := &backends{}
	var opts []fp_serv.Option

	if withStore {
		store, err := x_db.Open(cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		b.store = store
		b.closers = append(b.closers, func() { _ = store.Close() })
		opts = append(opts, fp_serv.WithStore(store))
	}

	if withBus {
		nc, closeBus, err := x_bus.Open(cfg.Nats)
		if err != nil {
			b.close()
			return nil, nil, fmt.Errorf("open bus: %w", err)
		}
		b.closers = append(b.closers, closeBus)
		opts = append(opts, fp_serv.WithBus(nc))
	}

	svc, err := fp_serv.New(cfg, opts...)
	if err != nil {
		b.close()
		return nil, nil, err
	}
	return svc, b, nil
}
