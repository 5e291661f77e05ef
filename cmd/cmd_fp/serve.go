package cmd_fp

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rskv-p/fpmine/pkg/x_log"
	"github.com/rskv-p/fpmine/servs/s_fp/fp_api"

	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveNoBus bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the mining HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, b, err := openService(true, !serveNoBus)
		if err != nil {
			return err
		}
		defer b.close()

		addr := cfg.HTTP.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		auth := fp_api.NewAuth(cfg.HTTP)
		if !auth.Enabled() {
			x_log.Warn().Msg("API auth is disabled")
		}
		return fp_api.Serve(ctx, addr, fp_api.Router(svc, auth))
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveNoBus, "no-bus", false, "Do not connect to NATS")
	register(serveCmd)
}
