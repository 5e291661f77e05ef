package x_fptree_test

import (
	"testing"

	"github.com/rskv-p/fpmine/pkg/x_fptree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//---------------------
// Helpers
//---------------------

func tx(items ...string) x_fptree.Transaction {
	out := make(x_fptree.Transaction, len(items))
	for i, it := range items {
		out[i] = x_fptree.Item(it)
	}
	return out
}

// workedTree builds the tree of the four sorted transactions
// [A,B] [A,B,C] [A] [B,C].
func workedTree() *x_fptree.Tree {
	t := x_fptree.NewTree()
	t.Insert(tx("A", "B"), 1)
	t.Insert(tx("A", "B", "C"), 1)
	t.Insert(tx("A"), 1)
	t.Insert(tx("B", "C"), 1)
	return t
}

func mustChild(t *testing.T, tr *x_fptree.Tree, id x_fptree.NodeID, item string) x_fptree.NodeID {
	t.Helper()
	c, ok := tr.Child(id, x_fptree.Item(item))
	require.True(t, ok, "missing child %q", item)
	return c
}

//---------------------
// Insertion
//---------------------

func TestTree_InsertMergesPrefixes(t *testing.T) {
	tr := workedTree()
	defer tr.Release()

	assert.Equal(t, 6, tr.Len())

	a := mustChild(t, tr, tr.Root(), "A")
	ab := mustChild(t, tr, a, "B")
	abc := mustChild(t, tr, ab, "C")
	b := mustChild(t, tr, tr.Root(), "B")
	bc := mustChild(t, tr, b, "C")

	assert.Equal(t, uint64(3), tr.Count(a))
	assert.Equal(t, uint64(2), tr.Count(ab))
	assert.Equal(t, uint64(1), tr.Count(abc))
	assert.Equal(t, uint64(1), tr.Count(b))
	assert.Equal(t, uint64(1), tr.Count(bc))

	assert.Equal(t, tr.Root(), tr.Parent(a))
	assert.Equal(t, x_fptree.NoNode, tr.Parent(tr.Root()))
	assert.Equal(t, x_fptree.Item(""), tr.Item(tr.Root()))
	assert.Equal(t, []x_fptree.NodeID{a, b}, tr.Children(tr.Root()))
}

func TestTree_InsertWeight(t *testing.T) {
	tr := x_fptree.NewTree()
	defer tr.Release()

	tr.Insert(tx("X", "Y"), 3)
	tr.Insert(tx("X"), 2)
	tr.Insert(tx("X", "Z"), 0) // ignored

	x := mustChild(t, tr, tr.Root(), "X")
	y := mustChild(t, tr, x, "Y")
	assert.Equal(t, uint64(5), tr.Count(x))
	assert.Equal(t, uint64(3), tr.Count(y))
	_, ok := tr.Child(x, "Z")
	assert.False(t, ok)
	assert.Equal(t, 3, tr.Len())
}

func TestTree_RepeatedItemsNest(t *testing.T) {
	tr := x_fptree.NewTree()
	defer tr.Release()

	tr.Insert(tx("A", "A"), 1)

	outer := mustChild(t, tr, tr.Root(), "A")
	inner := mustChild(t, tr, outer, "A")
	assert.Len(t, tr.Header().Nodes("A"), 2)
	assert.Equal(t, uint64(2), tr.Support("A"))
	assert.Equal(t, []x_fptree.Item{"A"}, tr.PrefixPath(inner))
}

//---------------------
// Header Table
//---------------------

func TestHeader_ChainOrderAndSupport(t *testing.T) {
	tr := workedTree()
	defer tr.Release()

	h := tr.Header()
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []x_fptree.Item{"A", "B", "C"}, h.Items())

	for _, it := range h.Items() {
		ids := h.Nodes(it)
		require.NotEmpty(t, ids)

		// next links visit nodes in header order
		for i, id := range ids {
			want := x_fptree.NoNode
			if i+1 < len(ids) {
				want = ids[i+1]
			}
			assert.Equal(t, want, tr.Next(id))
			assert.Equal(t, it, tr.Item(id))
		}
		assert.Equal(t, tr.Support(it), tr.ChainSupport(it))
	}

	assert.Equal(t, uint64(3), tr.Support("A"))
	assert.Equal(t, uint64(3), tr.Support("B"))
	assert.Equal(t, uint64(2), tr.Support("C"))
	assert.Equal(t, uint64(0), tr.Support("missing"))
}

func TestTree_PrefixPath(t *testing.T) {
	tr := workedTree()
	defer tr.Release()

	cs := tr.Header().Nodes("C")
	require.Len(t, cs, 2)
	assert.Equal(t, []x_fptree.Item{"A", "B"}, tr.PrefixPath(cs[0]))
	assert.Equal(t, []x_fptree.Item{"B"}, tr.PrefixPath(cs[1]))

	a := tr.Header().Nodes("A")[0]
	assert.Empty(t, tr.PrefixPath(a))
}

//---------------------
// Release
//---------------------

func TestTree_ReleaseIdempotent(t *testing.T) {
	tr := workedTree()
	a := tr.Arena()
	require.Equal(t, 6, a.Live())
	require.Equal(t, 1, a.Trees())

	tr.Release()
	assert.True(t, tr.Released())
	assert.Equal(t, 0, a.Live())
	assert.Equal(t, 0, a.Trees())
	assert.Equal(t, 0, tr.Header().Len())
	assert.Equal(t, 6, a.Peak())

	tr.Release()
	assert.Equal(t, 0, a.Live())

	tr.Insert(tx("A"), 1)
	assert.Equal(t, 0, tr.Len())

	var nilTree *x_fptree.Tree
	assert.NotPanics(t, nilTree.Release)
}

func TestTree_EmptyTree(t *testing.T) {
	tr := x_fptree.NewTree()
	defer tr.Release()

	assert.True(t, tr.Empty())
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, 0, tr.Header().Len())
	assert.Nil(t, tr.Children(tr.Root()))
}
