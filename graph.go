package dawg

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// Graph is an immutable DAWG: an edge array plus one trailing root
// sentinel whose child field points at index 1. Index 0 holds the null
// edge and indices 1..1+MaxChars hold the root node, one slot per
// possible first letter. A Graph is safe for concurrent readers.
type Graph struct {
	edges []Edge
}

// LoadBuffer builds a Graph from a caller-provided edge array, which
// must not include the root sentinel. The edges are copied.
func LoadBuffer(edges []Edge) *Graph {
	arena := make([]Edge, len(edges)+1)
	copy(arena, edges)
	arena[len(edges)].setChild(1)
	return &Graph{edges: arena}
}

// NumEdges returns the number of edges in the graph, not counting the
// root sentinel.
func (g *Graph) NumEdges() int { return len(g.edges) - 1 }

// EdgeAt returns the edge word at the given index, or the null edge if
// the index is out of range.
func (g *Graph) EdgeAt(index uint32) Edge {
	if int(index) >= len(g.edges) {
		return 0
	}
	return g.edges[index]
}

// Root returns a cursor on the root sentinel. Its only meaningful
// operation is Child, which descends to the first edge of the root
// node.
func (g *Graph) Root() Cursor {
	return Cursor{g, uint32(len(g.edges) - 1)}
}

// Contains reports whether word was one of the words the graph was
// built from. The empty string is never contained.
func (g *Graph) Contains(word string) bool {
	it := g.Root().Child()
	eow := false

	for i := 0; i < len(word); i++ {
		it = it.Find(word[i])
		if it.IsNull() {
			return false
		}
		eow = it.Edge().EndOfWord()
		it = it.Child()
	}

	return eow
}

// PrefixesOf returns every stored word that is a prefix of input, in
// increasing length order.
func (g *Graph) PrefixesOf(input string) []string {
	var results []string
	it := g.Root().Child()

	for i := 0; i < len(input); i++ {
		it = it.Find(input[i])
		if it.IsNull() {
			break
		}
		if it.Edge().EndOfWord() {
			results = append(results, input[:i+1])
		}
		it = it.Child()
	}

	return results
}

// EnumerationResult is returned by an EnumFn to control enumeration.
type EnumerationResult = int

const (
	// Continue enumerating below this prefix.
	Continue EnumerationResult = iota

	// Skip all words below this prefix.
	Skip

	// Stop enumerating altogether.
	Stop
)

// EnumFn receives each prefix reachable in the graph together with
// whether a word ends there. The word slice is reused between calls;
// copy it if it needs to outlive the callback.
type EnumFn = func(word []byte, final bool) EnumerationResult

// Enumerate walks the graph depth-first in edge order, which is the
// lexicographic order the words were added in, and calls fn for every
// prefix.
func (g *Graph) Enumerate(fn EnumFn) {
	g.enumerate(g.Root().Child(), nil, fn)
}

func (g *Graph) enumerate(node Cursor, word []byte, fn EnumFn) EnumerationResult {
	for it := node; !it.IsNull(); it = it.Next() {
		e := it.Edge()
		if e.Letter() == 0 {
			// unused root slot
			continue
		}

		word = append(word, e.Letter())
		result := fn(word, e.EndOfWord())
		if result == Stop {
			return Stop
		}
		if result == Continue && e.Child() != 0 {
			if g.enumerate(it.Child(), word, fn) == Stop {
				return Stop
			}
		}
		word = word[:len(word)-1]
	}
	return Continue
}

// Stats describes the size of a graph.
type Stats struct {
	Edges int // edge words in the arena, null edge and root included
	Bytes int // size of the on-disk image
}

// Stats returns size information for the graph.
func (g *Graph) Stats() Stats {
	n := g.NumEdges()
	return Stats{Edges: n, Bytes: headerSize + edgeWordSize*n}
}

func (s Stats) String() string {
	return fmt.Sprintf("%s edges, %s on disk",
		humanize.Comma(int64(s.Edges)), humanize.IBytes(uint64(s.Bytes)))
}

// Dump writes a human-readable listing of every non-zero edge to w.
func (g *Graph) Dump(w io.Writer) {
	fmt.Fprintf(w, "dawg: %v\n", g.Stats())
	for i, e := range g.edges[:g.NumEdges()] {
		if e == 0 {
			continue
		}
		fmt.Fprintf(w, "%7d %v\n", i, e)
	}
}
