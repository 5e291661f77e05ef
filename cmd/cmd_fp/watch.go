package cmd_fp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rskv-p/fpmine/codec"
	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_bus"
	"github.com/rskv-p/fpmine/servs/s_fp/fp_serv"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [run-id]",
	Short: "Print itemsets published on the bus",
	Long:  "Without a run id every run is followed until interrupted; with one, watch exits when that run is done.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		nc, closeBus, err := x_bus.Open(cfg.Nats)
		if err != nil {
			return err
		}
		defer closeBus()

		subject := cfg.Nats.Subject + ".*"
		once := len(args) == 1
		if once {
			subject = x_bus.RunSubject(cfg.Nats.Subject, args[0])
		}

		out := cmd.OutOrStdout()
		return x_bus.Watch(ctx, nc, subject, once, func(m *codec.ItemsetMessage) {
			switch m.Type {
			case constant.MessageTypeItemset:
				fmt.Fprintf(out, "%s %s\n", m.RunID, fp_serv.PlainItemset(m.Itemset()))
			case constant.MessageTypeDone:
				fmt.Fprintf(out, "%s done: %d itemsets\n", m.RunID, m.Total)
			case constant.MessageTypeError:
				fmt.Fprintf(out, "%s failed: %s\n", m.RunID, m.Error)
			}
		})
	},
}

func init() {
	register(watchCmd)
}
