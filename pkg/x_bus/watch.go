package x_bus

import (
	"context"
	"errors"
	"fmt"

	"github.com/rskv-p/fpmine/codec"
	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_log"

	"github.com/nats-io/nats.go"
)

// Watch subscribes to subject (a run subject or a wildcard such as
// "fpmine.itemsets.*") and hands every message to fn. With once set it
// returns after the first done or error message; otherwise it runs until
// ctx ends.
func Watch(ctx context.Context, nc *nats.Conn, subject string, once bool, fn func(*codec.ItemsetMessage)) error {
	if nc == nil || !nc.IsConnected() {
		return constant.ErrBusNotConnected
	}

	ch := make(chan *nats.Msg, 256)
	sub, err := nc.ChanSubscribe(subject, ch)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	if err := nc.Flush(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case msg := <-ch:
			m, err := codec.Decode(msg.Data)
			if err != nil {
				x_log.Warn().Err(err).Str("subject", msg.Subject).Msg("skipping bad message")
				continue
			}
			fn(m)
			if once && m.Type != constant.MessageTypeItemset {
				return nil
			}
		}
	}
}
