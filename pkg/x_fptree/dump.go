// file:fpmine/pkg/x_fptree/dump.go
package x_fptree

import (
	"fmt"
	"io"
	"strings"
)

//---------------------
// Tree Dump (Debug)
//---------------------

// dumpIndent is the number of spaces per level below the first.
const dumpIndent = 6

// dumpEntry is a pending node in the dump traversal.
type dumpEntry struct {
	id    NodeID
	depth int
	last  bool
}

// Dump writes a visual tree representation to w. clean maps an item to its
// display name; nil prints items unchanged.
func (t *Tree) Dump(w io.Writer, clean func(Item) string) {
	if t.Released() {
		fmt.Fprintln(w, "EMPTY")
		return
	}
	if clean == nil {
		clean = func(it Item) string { return string(it) }
	}

	fmt.Fprintln(w, "ROOT")
	stack := t.pushChildren(nil, rootID, 1)
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[e.id]
		fmt.Fprintf(w, "%s%s [%d]\n", dumpPre(e.depth, e.last), clean(n.item), n.count)
		stack = t.pushChildren(stack, e.id, e.depth+1)
	}
}

// pushChildren appends the children of id in reverse item order so that the
// smallest item is popped first.
func (t *Tree) pushChildren(stack []dumpEntry, id NodeID, depth int) []dumpEntry {
	kids := t.Children(id)
	for i := len(kids) - 1; i >= 0; i-- {
		stack = append(stack, dumpEntry{id: kids[i], depth: depth, last: i == len(kids)-1})
	}
	return stack
}

//---------------------
// Indentation Helper
//---------------------

func dumpPre(depth int, last bool) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", (depth-1)*dumpIndent))
	if last {
		b.WriteString("\\-- ")
	} else {
		b.WriteString("|-- ")
	}
	return b.String()
}
