// file:fpmine/pkg/x_fptree/arena.go
package x_fptree

//---------------------
// Arena (live node accounting)
//---------------------

// Arena tracks how many nodes are alive across a top-level tree and all
// conditional trees derived from it. It is not safe for concurrent use;
// each mining job owns its own arena.
type Arena struct {
	live  int
	peak  int
	trees int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewTree creates an empty tree whose nodes are counted by this arena.
func (a *Arena) NewTree() *Tree {
	return newTree(a)
}

// Live returns the number of nodes not yet released.
func (a *Arena) Live() int {
	if a == nil {
		return 0
	}
	return a.live
}

// Peak returns the highest live node count observed.
func (a *Arena) Peak() int {
	if a == nil {
		return 0
	}
	return a.peak
}

// Trees returns the number of trees not yet released.
func (a *Arena) Trees() int {
	if a == nil {
		return 0
	}
	return a.trees
}

func (a *Arena) acquire(n int) {
	a.live += n
	if a.live > a.peak {
		a.peak = a.live
	}
}

func (a *Arena) release(n int) {
	a.live -= n
}
