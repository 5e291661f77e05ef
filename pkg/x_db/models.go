package x_db

import (
	"time"

	"github.com/rskv-p/fpmine/pkg/x_fptree"
)

//---------------------
// Models
//---------------------

// Run status values.
const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Run is one stored mining run.
type Run struct {
	ID               string    `gorm:"primaryKey;size:32" json:"id"`
	Dataset          string    `gorm:"index" json:"dataset"`
	MinSupport       int       `json:"min_support"`
	Transactions     int       `json:"transactions"`
	Itemsets         uint64    `json:"itemsets"`
	MaxLength        int       `json:"max_length"`
	ConditionalTrees int       `json:"conditional_trees"`
	DurationMs       int64     `json:"duration_ms"`
	Status           string    `gorm:"size:16" json:"status"`
	Error            string    `json:"error,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ItemsetRow is one frequent itemset of a run, in mining order.
type ItemsetRow struct {
	ID      uint     `gorm:"primaryKey" json:"-"`
	RunID   string   `gorm:"index;size:32" json:"run_id"`
	Seq     uint64   `json:"seq"`
	Items   []string `gorm:"serializer:json" json:"items"`
	Size    int      `gorm:"index" json:"size"`
	Support uint64   `json:"support"`
}

// Itemset converts the row back into a mined itemset.
func (r ItemsetRow) Itemset() x_fptree.Itemset {
	items := make([]x_fptree.Item, len(r.Items))
	for i, s := range r.Items {
		items[i] = x_fptree.Item(s)
	}
	return x_fptree.Itemset{Items: items, Support: r.Support}
}
