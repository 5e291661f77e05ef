package x_bus

import (
	"fmt"

	"github.com/rskv-p/fpmine/codec"
	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_fptree"

	"github.com/nats-io/nats.go"
)

var _ x_fptree.Sink = (*Publisher)(nil)

// Publisher is a mining sink that publishes each itemset of one run to
// <subject>.<runID>.
type Publisher struct {
	nc      *nats.Conn
	subject string
	runID   string
	seq     uint64
}

// RunSubject returns the subject a run is published on.
func RunSubject(subject, runID string) string {
	return subject + "." + runID
}

// NewPublisher returns a sink for runID.
func NewPublisher(nc *nats.Conn, subject, runID string) (*Publisher, error) {
	if nc == nil || !nc.IsConnected() {
		return nil, constant.ErrBusNotConnected
	}
	if subject == "" {
		subject = constant.DefaultSubject
	}
	return &Publisher{nc: nc, subject: RunSubject(subject, runID), runID: runID}, nil
}

// Subject returns the run subject.
func (p *Publisher) Subject() string {
	return p.subject
}

// Emit publishes set.
func (p *Publisher) Emit(set x_fptree.Itemset) error {
	p.seq++
	return p.publish(codec.NewItemset(p.runID, p.seq, set))
}

// Done publishes the end of the run with the emitted total and flushes.
func (p *Publisher) Done() error {
	if err := p.publish(codec.NewDone(p.runID, p.seq)); err != nil {
		return err
	}
	return p.nc.Flush()
}

// Fail publishes a run failure and flushes.
func (p *Publisher) Fail(runErr error) error {
	if err := p.publish(codec.NewError(p.runID, runErr)); err != nil {
		return err
	}
	return p.nc.Flush()
}

func (p *Publisher) publish(m *codec.ItemsetMessage) error {
	data, err := codec.Encode(m)
	if err != nil {
		return err
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}
