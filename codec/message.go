package codec

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_fptree"
)

// ----------------------------------------------------
// Itemset stream message
// ----------------------------------------------------

// ItemsetMessage is the unit streamed over NATS and websocket.
type ItemsetMessage struct {
	Type    string   `json:"type"`
	RunID   string   `json:"run_id,omitempty"`
	Seq     uint64   `json:"seq,omitempty"`
	Items   []string `json:"items,omitempty"`
	Support uint64   `json:"support,omitempty"`
	Total   uint64   `json:"total,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// NewItemset wraps the seq-th itemset of a run.
func NewItemset(runID string, seq uint64, set x_fptree.Itemset) *ItemsetMessage {
	return &ItemsetMessage{
		Type:    constant.MessageTypeItemset,
		RunID:   runID,
		Seq:     seq,
		Items:   set.Strings(),
		Support: set.Support,
	}
}

// NewDone closes a run stream with the number of emitted itemsets.
func NewDone(runID string, total uint64) *ItemsetMessage {
	return &ItemsetMessage{Type: constant.MessageTypeDone, RunID: runID, Total: total}
}

// NewError reports a failed run.
func NewError(runID string, err error) *ItemsetMessage {
	m := &ItemsetMessage{Type: constant.MessageTypeError, RunID: runID}
	if err != nil {
		m.Error = err.Error()
	}
	return m
}

// Itemset converts the message back into a mined itemset.
func (m *ItemsetMessage) Itemset() x_fptree.Itemset {
	items := make([]x_fptree.Item, len(m.Items))
	for i, s := range m.Items {
		items[i] = x_fptree.Item(s)
	}
	return x_fptree.Itemset{Items: items, Support: m.Support}
}

// Validate checks the message shape for its type.
func (m *ItemsetMessage) Validate() error {
	if m == nil {
		return errors.New("nil message")
	}
	switch m.Type {
	case constant.MessageTypeItemset:
		if len(m.Items) == 0 {
			return errors.New("itemset message without items")
		}
		if m.Support == 0 {
			return errors.New("itemset message without support")
		}
	case constant.MessageTypeDone:
	case constant.MessageTypeError:
		if m.Error == "" {
			return errors.New("error message without error text")
		}
	case "":
		return errors.New("missing Type")
	default:
		return fmt.Errorf("unknown message type %q", m.Type)
	}
	return nil
}

// ----------------------------------------------------
// REST / websocket payloads
// ----------------------------------------------------

// MineRequest asks for one mining run over a catalog dataset or inline rows.
type MineRequest struct {
	Dataset      string     `json:"dataset,omitempty"`
	Transactions [][]string `json:"transactions,omitempty"`
	MinSupport   int        `json:"min_support"`
	Store        bool       `json:"store,omitempty"`
	Publish      bool       `json:"publish,omitempty"`
	Tree         bool       `json:"tree,omitempty"`
}

// Validate rejects requests the miner cannot serve.
func (r *MineRequest) Validate() error {
	if r.MinSupport < 1 {
		return fmt.Errorf("%w: %d", constant.ErrInvalidSupport, r.MinSupport)
	}
	if r.Dataset == "" && len(r.Transactions) == 0 {
		return constant.ErrNoInput
	}
	return nil
}

// MineResponse is the outcome of a run.
type MineResponse struct {
	RunID        string             `json:"run_id"`
	Dataset      string             `json:"dataset,omitempty"`
	MinSupport   int                `json:"min_support"`
	Transactions int                `json:"transactions"`
	Result       x_fptree.Result    `json:"result"`
	ElapsedMs    int64              `json:"elapsed_ms"`
	Tree         string             `json:"tree,omitempty"`
	Itemsets     []x_fptree.Itemset `json:"itemsets,omitempty"`
}

// SortedItemsets returns the itemsets ordered by descending support, then
// by their rendering. The mining order is left untouched.
func (r *MineResponse) SortedItemsets() []x_fptree.Itemset {
	out := slices.Clone(r.Itemsets)
	slices.SortStableFunc(out, func(a, b x_fptree.Itemset) int {
		if c := cmp.Compare(b.Support, a.Support); c != 0 {
			return c
		}
		return cmp.Compare(a.String(), b.String())
	})
	return out
}
