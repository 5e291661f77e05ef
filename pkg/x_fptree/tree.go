// file:fpmine/pkg/x_fptree/tree.go

// Package x_fptree implements the FP-tree and FP-Growth frequent itemset mining.
package x_fptree

import (
	"cmp"
	"slices"
)

//---------------------
// Nodes
//---------------------

// NodeID addresses a node inside one tree's arena slice.
type NodeID int32

// NoNode terminates parent and next-same-item links.
const NoNode NodeID = -1

const rootID NodeID = 0

// node is an FP-tree node. Children are owned through kids;
// parent and next are observation links only.
type node struct {
	item   Item
	count  uint64
	parent NodeID
	next   NodeID
	kids   map[Item]NodeID
}

//---------------------
// Tree
//---------------------

// Tree is an FP-tree with its header table. A node 0 root sentinel with an
// empty item is always present until the tree is released.
type Tree struct {
	arena  *Arena
	nodes  []node
	header *HeaderTable
}

// NewTree creates an empty tree with its own arena.
func NewTree() *Tree {
	return newTree(NewArena())
}

func newTree(a *Arena) *Tree {
	t := &Tree{
		arena:  a,
		nodes:  []node{{parent: NoNode, next: NoNode}},
		header: newHeaderTable(),
	}
	a.acquire(1)
	a.trees++
	return t
}

// Arena returns the arena that accounts for this tree's nodes.
func (t *Tree) Arena() *Arena { return t.arena }

// Header returns the tree's header table.
func (t *Tree) Header() *HeaderTable { return t.header }

// Root returns the root sentinel id.
func (t *Tree) Root() NodeID { return rootID }

// Len returns the number of live nodes, root included.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Empty reports whether the tree holds no items.
func (t *Tree) Empty() bool {
	return t.Len() <= 1
}

// Released reports whether Release has run.
func (t *Tree) Released() bool {
	return t == nil || t.nodes == nil
}

// Item returns the item held by id; empty for the root.
func (t *Tree) Item(id NodeID) Item { return t.nodes[id].item }

// Count returns the weighted count of id.
func (t *Tree) Count(id NodeID) uint64 { return t.nodes[id].count }

// Parent returns the parent of id, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].parent }

// Next returns the next node holding the same item, or NoNode.
func (t *Tree) Next(id NodeID) NodeID { return t.nodes[id].next }

// Child returns the child of id holding item.
func (t *Tree) Child(id NodeID, item Item) (NodeID, bool) {
	c, ok := t.nodes[id].kids[item]
	return c, ok
}

// Children returns the children of id ordered by item.
func (t *Tree) Children(id NodeID) []NodeID {
	kids := t.nodes[id].kids
	if len(kids) == 0 {
		return nil
	}
	out := make([]NodeID, 0, len(kids))
	for _, c := range kids {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b NodeID) int {
		return cmp.Compare(t.nodes[a].item, t.nodes[b].item)
	})
	return out
}

//---------------------
// Insertion
//---------------------

// Insert adds one filtered, support-ordered transaction with the given weight.
// Shared prefixes are merged; repeated items nest under themselves.
func (t *Tree) Insert(tx Transaction, weight uint64) {
	if t.Released() || weight == 0 {
		return
	}
	cur := rootID
	for _, it := range tx {
		if c, ok := t.nodes[cur].kids[it]; ok {
			t.nodes[c].count += weight
			cur = c
			continue
		}
		cur = t.addChild(cur, it, weight)
	}
}

// addChild creates a node under parent and links it into the header chain.
func (t *Tree) addChild(parent NodeID, item Item, weight uint64) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		item:   item,
		count:  weight,
		parent: parent,
		next:   NoNode,
	})
	p := &t.nodes[parent]
	if p.kids == nil {
		p.kids = make(map[Item]NodeID, 1)
	}
	p.kids[item] = id

	if last, ok := t.header.Last(item); ok {
		t.nodes[last].next = id
	}
	t.header.append(item, id)
	t.arena.acquire(1)
	return id
}

//---------------------
// Queries
//---------------------

// Support sums the counts along the header chain of item.
func (t *Tree) Support(item Item) uint64 {
	var total uint64
	for _, id := range t.header.Nodes(item) {
		total += t.nodes[id].count
	}
	return total
}

// ChainSupport sums counts by following next links from the first node.
// It always equals Support.
func (t *Tree) ChainSupport(item Item) uint64 {
	ids := t.header.Nodes(item)
	if len(ids) == 0 {
		return 0
	}
	var total uint64
	for id := ids[0]; id != NoNode; id = t.nodes[id].next {
		total += t.nodes[id].count
	}
	return total
}

// PrefixPath returns the items from the root down to the parent of id.
// The node itself and the root are excluded.
func (t *Tree) PrefixPath(id NodeID) []Item {
	var path []Item
	for p := t.nodes[id].parent; p != NoNode && p != rootID; p = t.nodes[p].parent {
		path = append(path, t.nodes[p].item)
	}
	slices.Reverse(path)
	return path
}

//---------------------
// Release
//---------------------

// Release frees every node, children before their parent, and empties the
// header table. It is safe to call more than once and on a nil tree.
func (t *Tree) Release() {
	if t.Released() {
		return
	}
	type visit struct {
		id   NodeID
		done bool
	}
	stack := []visit{{id: rootID}}
	freed := 0
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[v.id]
		if v.done || len(n.kids) == 0 {
			n.kids = nil
			n.parent, n.next = NoNode, NoNode
			freed++
			continue
		}
		stack = append(stack, visit{id: v.id, done: true})
		for _, c := range n.kids {
			stack = append(stack, visit{id: c})
		}
	}
	t.arena.release(freed)
	t.arena.trees--
	t.nodes = nil
	t.header.reset()
}
