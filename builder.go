package dawg

import (
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

const (
	// MaxChars is the number of root slots, one per possible first
	// letter.
	MaxChars = 256

	// MaxWordLength is the exclusive upper bound on word length.
	MaxWordLength = 32

	// hashTableSize must be prime; the probe sequence depends on it.
	hashTableSize = 1000003

	// MaxEdges is the largest number of edges a graph can hold.
	MaxEdges = hashTableSize - 1
)

// Builder constructs a minimal Graph from words supplied in strictly
// increasing byte order. The builder holds only a single root-to-leaf
// path (plus uncommitted siblings at each depth) in its working stack;
// everything below the path has already been committed and
// canonicalized.
//
// A Builder is exclusively owned while building. Call Start before the
// first Add; Finish hands back the Graph and releases the working
// buffers. Any error from Add or Finish is terminal for the build.
type Builder struct {
	edges     []Edge   // committed arena; null edge and root slots reserved up front
	edgeStack []Edge   // MaxWordLength levels of MaxChars in-progress edges
	counts    []int    // edges used per level
	hashTable []uint32 // node hash -> start index in edges; 0 means empty
	hashUsed  int
	stackPos  int
	haveWord  bool
}

// New creates an empty Builder. Call Start before adding words.
func New() *Builder {
	return &Builder{}
}

// Start allocates the working buffers. Starting an already-started
// builder is an error; Clear it first.
func (b *Builder) Start() error {
	if b.started() {
		return errors.New("builder already started")
	}

	// The first edge is the null edge and the next MaxChars slots are
	// reserved for the root node, filled in by Finish.
	b.edges = make([]Edge, 1+MaxChars, MaxEdges)
	b.edgeStack = make([]Edge, MaxWordLength*MaxChars)
	b.counts = make([]int, MaxWordLength)
	b.hashTable = make([]uint32, hashTableSize)
	b.hashUsed = 0
	b.stackPos = 0
	b.haveWord = false
	return nil
}

// Clear releases the working buffers and returns the builder to its
// initial state, after which Start may be called again.
func (b *Builder) Clear() {
	b.edges = nil
	b.edgeStack = nil
	b.counts = nil
	b.hashTable = nil
	b.hashUsed = 0
	b.stackPos = 0
	b.haveWord = false
}

func (b *Builder) started() bool { return b.hashTable != nil }

// level returns the in-progress node at the given depth.
func (b *Builder) level(pos int) []Edge {
	return b.edgeStack[pos*MaxChars : (pos+1)*MaxChars]
}

// cur returns the active edge at the given depth: the last one
// appended there.
func (b *Builder) cur(pos int) *Edge {
	return &b.edgeStack[pos*MaxChars+b.counts[pos]-1]
}

// lastWord spells the word the active path currently represents, which
// is always the most recently added word.
func (b *Builder) lastWord() string {
	var sb strings.Builder
	for i := 0; i <= b.stackPos; i++ {
		sb.WriteByte(b.cur(i).Letter())
	}
	return sb.String()
}

// CanAdd reports whether Add would accept the word.
func (b *Builder) CanAdd(word string) bool {
	return b.started() &&
		len(word) > 0 && len(word) < MaxWordLength &&
		(!b.haveWord || word >= b.lastWord())
}

// Add adds a word. Words must be added in strictly increasing byte
// order; adding the previous word again is a no-op.
func (b *Builder) Add(word string) error {
	if !b.started() {
		return errors.Wrap(ErrNotStarted, "Add")
	}
	if len(word) >= MaxWordLength {
		return errors.Wrapf(ErrWordTooLong, "%q is %d chars, max is %d", word, len(word), MaxWordLength-1)
	}
	if len(word) == 0 {
		return errors.Wrap(ErrOutOfOrder, "empty word")
	}

	if b.haveWord {
		// Find the first letter that differs from the active path.
		i := 0
		for i <= b.stackPos && i < len(word) {
			if word[i] != b.cur(i).Letter() {
				break
			}
			i++
		}

		if i <= b.stackPos {
			// The word leaves the path at depth i; if the word ran out
			// first the implicit NUL sorts below every letter.
			var c byte
			if i < len(word) {
				c = word[i]
			}
			if c < b.cur(i).Letter() {
				return errors.Wrapf(ErrOutOfOrder, "%q[%d] (%q < %q)", word, i, c, b.cur(i).Letter())
			}

			// Commit every node below the divergence point.
			for b.stackPos > i {
				if err := b.finishNode(b.stackPos); err != nil {
					return err
				}
				b.stackPos--
			}
		} else {
			// The previous word is a prefix of this one; grow from a
			// fresh level.
			b.stackPos++
		}
	}

	for b.stackPos < len(word) {
		b.counts[b.stackPos]++
		b.cur(b.stackPos).setLetter(word[b.stackPos])
		b.stackPos++
	}
	b.stackPos--

	b.cur(b.stackPos).setEndOfWord(true)
	b.haveWord = true
	return nil
}

// Finish commits the remaining path, emits the root node and returns
// the immutable Graph. The working buffers are released whether or not
// an error occurs.
func (b *Builder) Finish() (*Graph, error) {
	if !b.started() {
		return nil, errors.Wrap(ErrNotStarted, "Finish")
	}

	for b.stackPos > 0 {
		if err := b.finishNode(b.stackPos); err != nil {
			b.Clear()
			return nil, err
		}
		b.stackPos--
	}

	if b.counts[0] > 0 {
		b.cur(0).setEndOfNode(true)
	}

	// The root node is the whole depth-0 slab, zeroed tail included.
	// The last slot gets end-of-node regardless, so iteration stays
	// bounded even with all MaxChars slots in use.
	copy(b.edges[1:1+MaxChars], b.level(0))
	b.edges[MaxChars].setEndOfNode(true)

	g := LoadBuffer(b.edges)
	b.Clear()
	return g, nil
}

// OccupiedHashSlots returns how many canonicalization table slots are
// in use, one per committed node.
func (b *Builder) OccupiedHashSlots() int { return b.hashUsed }

// finishNode commits the in-progress node at the given depth: it is
// canonicalized through the hash table, appended to the arena if no
// structurally identical node exists yet, and linked from the parent's
// active edge. The level is then reset.
func (b *Builder) finishNode(pos int) error {
	b.cur(pos).setEndOfNode(true)

	node := b.level(pos)[:b.counts[pos]]

	h, err := b.findHashIndex(node)
	if err != nil {
		return err
	}

	idx := b.hashTable[h]
	if idx == 0 {
		if len(b.edges)+len(node) > MaxEdges {
			return errors.Wrapf(ErrFull, "%d edges committed, %d more would exceed %d", len(b.edges), len(node), MaxEdges)
		}

		idx = uint32(len(b.edges))
		b.edges = append(b.edges, node...)
		b.hashTable[h] = idx
		b.hashUsed++
	}

	b.cur(pos - 1).setChild(idx)

	for j := range node {
		node[j] = 0
	}
	b.counts[pos] = 0
	return nil
}

// findHashIndex locates the table slot for a node: either the slot
// already holding a structurally identical committed node, or the
// empty slot where it should be inserted. The probe steps by 9, 18,
// 27, ... so canonical placement is deterministic; changing the
// sequence would change the file image of every regression corpus.
func (b *Builder) findHashIndex(node []Edge) (uint32, error) {
	idx := computeHash(node) % hashTableSize
	first := idx
	step := uint32(9)

	for {
		start := b.hashTable[idx]
		if start == 0 {
			return idx, nil
		}
		if b.matchesAt(start, node) {
			return idx, nil
		}

		idx = (idx + step) % hashTableSize
		step = (step + 9) % hashTableSize

		if idx == first {
			return 0, errors.Wrapf(ErrHashFull, "%d slots occupied", b.hashUsed)
		}
	}
}

// matchesAt reports whether the committed edges starting at start are
// word-for-word identical to node.
func (b *Builder) matchesAt(start uint32, node []Edge) bool {
	if int(start)+len(node) > len(b.edges) {
		return false
	}
	for i, e := range node {
		if b.edges[int(start)+i] != e {
			return false
		}
	}
	return true
}

// computeHash hashes the exact packed words, so structurally identical
// nodes always hash alike. Different nodes can still collide;
// findHashIndex tells them apart by comparing the edges.
func computeHash(node []Edge) uint32 {
	var result uint32
	for _, e := range node {
		result = bits.RotateLeft32(result, 1) ^ uint32(e)
	}
	return result
}
