// file:fpmine/pkg/x_fptree/item.go
package x_fptree

import (
	"strconv"
	"strings"
)

//---------------------
// Items & Transactions
//---------------------

// Item is one attribute-value pair, e.g. "odor:n".
type Item string

// Transaction is an ordered sequence of items.
type Transaction []Item

// Itemset is a frequent itemset emitted by the miner.
// Items are in discovery order: the outermost item first.
type Itemset struct {
	Items   []Item `json:"items"`
	Support uint64 `json:"support"`
}

// Len returns the number of items.
func (s Itemset) Len() int { return len(s.Items) }

// Strings returns items as plain strings.
func (s Itemset) Strings() []string {
	out := make([]string, len(s.Items))
	for i, it := range s.Items {
		out[i] = string(it)
	}
	return out
}

// String renders the itemset as "{ a b } : n".
func (s Itemset) String() string {
	var b strings.Builder
	b.WriteString("{ ")
	for _, it := range s.Items {
		b.WriteString(string(it))
		b.WriteByte(' ')
	}
	b.WriteString("} : ")
	b.WriteString(strconv.FormatUint(s.Support, 10))
	return b.String()
}

// Transactions converts raw string rows into transactions.
func Transactions(rows [][]string) []Transaction {
	out := make([]Transaction, 0, len(rows))
	for _, row := range rows {
		tx := make(Transaction, len(row))
		for i, v := range row {
			tx[i] = Item(v)
		}
		out = append(out, tx)
	}
	return out
}
