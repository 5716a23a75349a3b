package dawg

// Cursor is a position in a Graph's edge array. Cursors are values;
// two cursors are equal iff they reference the same edge of the same
// graph. The null edge at index 0 is the universal terminator: walking
// past the end of a node, or descending through an edge with no child,
// lands there.
type Cursor struct {
	graph *Graph
	index uint32
}

// Edge returns the edge the cursor references. On the null cursor this
// is the all-zero word.
func (c Cursor) Edge() Edge { return c.graph.edges[c.index] }

// Index returns the edge index the cursor references.
func (c Cursor) Index() uint32 { return c.index }

// IsNull reports whether the cursor sits on the null edge.
func (c Cursor) IsNull() bool { return c.index == 0 }

// Next moves to the next edge of the same node, or to the null edge if
// the current edge is the last of its node.
func (c Cursor) Next() Cursor {
	if c.index == 0 || c.Edge().EndOfNode() || int(c.index)+1 >= len(c.graph.edges) {
		return Cursor{c.graph, 0}
	}
	return Cursor{c.graph, c.index + 1}
}

// Child descends to the first edge of the child node. Descending
// through an edge with no child yields the null cursor.
func (c Cursor) Child() Cursor {
	return Cursor{c.graph, c.Edge().Child()}
}

// Find scans the rest of the node, starting at the cursor itself, for
// an edge labeled with letter. It returns the null cursor if the node
// has no such edge.
func (c Cursor) Find(letter byte) Cursor {
	for i := c; !i.IsNull(); i = i.Next() {
		if i.Edge().Letter() == letter {
			return i
		}
	}
	return Cursor{c.graph, 0}
}
