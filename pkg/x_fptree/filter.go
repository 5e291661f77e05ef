// file:fpmine/pkg/x_fptree/filter.go
package x_fptree

import (
	"cmp"
	"slices"
)

//---------------------
// Frequency Filter
//---------------------

// Threshold converts a user supplied minimum support into a count.
// Values below one mean every item is frequent.
func Threshold(minSupport int) uint64 {
	if minSupport < 1 {
		return 1
	}
	return uint64(minSupport)
}

// CountSupport counts occurrences of every item over all transactions.
// Repeated items inside one transaction are counted each time.
func CountSupport(txs []Transaction) map[Item]uint64 {
	freq := make(map[Item]uint64)
	for _, tx := range txs {
		for _, it := range tx {
			freq[it]++
		}
	}
	return freq
}

// SortBySupport orders items by descending frequency, ties by item.
func SortBySupport(items []Item, freq map[Item]uint64) {
	slices.SortFunc(items, func(a, b Item) int {
		if c := cmp.Compare(freq[b], freq[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

// Keep returns the items of path whose frequency reaches threshold, ordered by
// SortBySupport. The input is not modified.
func Keep(path []Item, freq map[Item]uint64, threshold uint64) []Item {
	out := make([]Item, 0, len(path))
	for _, it := range path {
		if freq[it] >= threshold {
			out = append(out, it)
		}
	}
	SortBySupport(out, freq)
	return out
}

// Filter drops infrequent items from every transaction, orders the rest by
// descending global support and drops transactions left empty.
func Filter(txs []Transaction, minSupport int) []Transaction {
	return FilterWith(txs, CountSupport(txs), minSupport)
}

// FilterWith is Filter with precomputed global frequencies.
func FilterWith(txs []Transaction, freq map[Item]uint64, minSupport int) []Transaction {
	threshold := Threshold(minSupport)
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		kept := Keep(tx, freq, threshold)
		if len(kept) > 0 {
			out = append(out, Transaction(kept))
		}
	}
	return out
}

// Build filters txs and inserts each one with weight 1 into a new tree.
func Build(txs []Transaction, minSupport int) *Tree {
	return BuildIn(NewArena(), txs, minSupport)
}

// BuildIn is Build with a caller supplied arena.
func BuildIn(a *Arena, txs []Transaction, minSupport int) *Tree {
	t := a.NewTree()
	for _, tx := range Filter(txs, minSupport) {
		t.Insert(tx, 1)
	}
	return t
}
