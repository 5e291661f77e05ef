// file:fpmine/pkg/x_fptree/header.go
package x_fptree

//---------------------
// Header Table
//---------------------

// HeaderTable maps each item to the nodes holding it, in creation order.
// It is maintained by Tree.Insert only.
type HeaderTable struct {
	chains map[Item][]NodeID
	order  []Item // items in first-seen order
}

func newHeaderTable() *HeaderTable {
	return &HeaderTable{chains: make(map[Item][]NodeID)}
}

// Len returns the number of distinct items.
func (h *HeaderTable) Len() int {
	if h == nil {
		return 0
	}
	return len(h.order)
}

// Items returns the items in first-seen order.
func (h *HeaderTable) Items() []Item {
	if h == nil {
		return nil
	}
	out := make([]Item, len(h.order))
	copy(out, h.order)
	return out
}

// Nodes returns the chain for item. The slice must not be modified.
func (h *HeaderTable) Nodes(item Item) []NodeID {
	if h == nil {
		return nil
	}
	return h.chains[item]
}

// Last returns the most recently linked node for item.
func (h *HeaderTable) Last(item Item) (NodeID, bool) {
	ids := h.Nodes(item)
	if len(ids) == 0 {
		return NoNode, false
	}
	return ids[len(ids)-1], true
}

func (h *HeaderTable) append(item Item, id NodeID) {
	ids, ok := h.chains[item]
	if !ok {
		h.order = append(h.order, item)
	}
	h.chains[item] = append(ids, id)
}

func (h *HeaderTable) reset() {
	h.chains = make(map[Item][]NodeID)
	h.order = nil
}
