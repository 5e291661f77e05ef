package x_db

import (
	"context"

	"github.com/rskv-p/fpmine/pkg/x_fptree"
)

var _ x_fptree.Sink = (*Batch)(nil)

// Batch is a mining sink that buffers itemsets of one run and writes them
// in chunks. Call Flush once mining ends.
type Batch struct {
	store *Store
	ctx   context.Context
	runID string
	seq   uint64
	buf   []ItemsetRow
}

// NewBatch returns a sink storing itemsets under runID.
func (s *Store) NewBatch(ctx context.Context, runID string) *Batch {
	return &Batch{
		store: s,
		ctx:   ctx,
		runID: runID,
		buf:   make([]ItemsetRow, 0, s.batch),
	}
}

// Emit buffers set and writes a full chunk.
func (b *Batch) Emit(set x_fptree.Itemset) error {
	b.seq++
	b.buf = append(b.buf, ItemsetRow{
		RunID:   b.runID,
		Seq:     b.seq,
		Items:   set.Strings(),
		Size:    set.Len(),
		Support: set.Support,
	})
	if len(b.buf) >= b.store.batch {
		return b.Flush()
	}
	return nil
}

// Flush writes buffered rows.
func (b *Batch) Flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	if err := b.store.SaveItemsets(b.ctx, b.buf); err != nil {
		return err
	}
	b.buf = b.buf[:0]
	return nil
}

// Written reports the number of itemsets seen.
func (b *Batch) Written() uint64 {
	return b.seq
}
