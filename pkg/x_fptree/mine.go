// file:fpmine/pkg/x_fptree/mine.go
package x_fptree

import (
	"cmp"
	"context"
	"fmt"
	"slices"
)

//---------------------
// Mining Engine
//---------------------

// Result summarises one Mine call.
type Result struct {
	Itemsets         uint64 `json:"itemsets"`
	MaxLength        int    `json:"max_length"`
	ConditionalTrees int    `json:"conditional_trees"`
	PeakNodes        int    `json:"peak_nodes"`
}

// ItemSupport pairs an item with its support inside one tree.
type ItemSupport struct {
	Item    Item
	Support uint64
}

// FrequentItems returns the items of t whose support reaches threshold,
// ascending by support, ties by item.
func FrequentItems(t *Tree, threshold uint64) []ItemSupport {
	items := make([]ItemSupport, 0, t.header.Len())
	for _, it := range t.header.order {
		if s := t.Support(it); s >= threshold {
			items = append(items, ItemSupport{Item: it, Support: s})
		}
	}
	slices.SortFunc(items, func(a, b ItemSupport) int {
		if c := cmp.Compare(a.Support, b.Support); c != 0 {
			return c
		}
		return cmp.Compare(a.Item, b.Item)
	})
	return items
}

// PatternPath is one entry of a conditional pattern base.
type PatternPath struct {
	Items  []Item
	Weight uint64
}

// PatternBase collects the weighted prefix paths of every node holding item.
// Nodes sitting directly under the root contribute nothing.
func PatternBase(t *Tree, item Item) []PatternPath {
	var base []PatternPath
	for _, id := range t.header.Nodes(item) {
		path := t.PrefixPath(id)
		if len(path) == 0 {
			continue
		}
		base = append(base, PatternPath{Items: path, Weight: t.nodes[id].count})
	}
	return base
}

// Conditional builds the conditional tree of item in the arena of t.
// It returns nil when the pattern base is empty. The caller owns the tree.
func Conditional(t *Tree, item Item, threshold uint64) *Tree {
	base := PatternBase(t, item)
	if len(base) == 0 {
		return nil
	}
	freq := make(map[Item]uint64)
	for _, p := range base {
		for _, it := range p.Items {
			freq[it] += p.Weight
		}
	}
	cond := t.arena.NewTree()
	for _, p := range base {
		if kept := Keep(p.Items, freq, threshold); len(kept) > 0 {
			cond.Insert(kept, p.Weight)
		}
	}
	return cond
}

// frame is one pending level of the mining recursion.
type frame struct {
	tree   *Tree
	prefix []Item
	items  []ItemSupport
	pos    int
	owned  bool
}

// Mine emits every frequent itemset of t into sink. Items are processed in
// ascending support order and each conditional tree is mined before the next
// item, so the output order is fully deterministic.
//
// Conditional trees are released before Mine returns, including when ctx is
// cancelled or the sink fails. t itself stays owned by the caller.
func Mine(ctx context.Context, t *Tree, minSupport int, sink Sink) (Result, error) {
	var res Result
	if t.Released() {
		return res, nil
	}
	if sink == nil {
		sink = Discard
	}
	threshold := Threshold(minSupport)

	stack := []*frame{{tree: t, items: FrequentItems(t, threshold)}}
	defer func() {
		for _, f := range stack {
			if f.owned {
				f.tree.Release()
			}
		}
	}()

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.pos >= len(f.items) {
			stack = stack[:len(stack)-1]
			if f.owned {
				f.tree.Release()
			}
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		is := f.items[f.pos]
		f.pos++

		pattern := make([]Item, len(f.prefix)+1)
		copy(pattern, f.prefix)
		pattern[len(f.prefix)] = is.Item

		if err := sink.Emit(Itemset{Items: pattern, Support: is.Support}); err != nil {
			return res, fmt.Errorf("emit %v: %w", pattern, err)
		}
		res.Itemsets++
		res.MaxLength = max(res.MaxLength, len(pattern))

		cond := Conditional(f.tree, is.Item, threshold)
		if cond == nil {
			continue
		}
		res.ConditionalTrees++
		res.PeakNodes = max(res.PeakNodes, t.arena.Peak())
		if cond.header.Len() == 0 {
			cond.Release()
			continue
		}
		stack = append(stack, &frame{
			tree:   cond,
			prefix: pattern,
			items:  FrequentItems(cond, threshold),
			owned:  true,
		})
	}
	res.PeakNodes = max(res.PeakNodes, t.arena.Peak())
	return res, nil
}

// MineTransactions filters txs, builds the tree, mines it and releases it.
func MineTransactions(ctx context.Context, txs []Transaction, minSupport int, sink Sink) (Result, error) {
	t := Build(txs, minSupport)
	defer t.Release()
	return Mine(ctx, t, minSupport, sink)
}
