package dawg

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/exp/mmap"
)

// The file format is a raw little-endian memory image of the edge
// array:
//
//	offset 0: uint32 magic = 0xC6ACC231
//	offset 4: uint32 number of edges
//	offset 8: uint32 x num_edges edge words, in index order
//
// The root sentinel is not persisted; loaders reconstruct it.
const (
	magicNumber  = 0xC6ACC231
	headerSize   = 8
	edgeWordSize = 4
)

// Write writes the graph to w. Returns the number of bytes written.
func (g *Graph) Write(w io.Writer) (int64, error) {
	n := g.NumEdges()
	buf := make([]byte, headerSize+edgeWordSize*n)
	binary.LittleEndian.PutUint32(buf[0:], magicNumber)
	binary.LittleEndian.PutUint32(buf[4:], uint32(n))
	for i, e := range g.edges[:n] {
		binary.LittleEndian.PutUint32(buf[headerSize+edgeWordSize*i:], uint32(e))
	}

	written, err := w.Write(buf)
	if err != nil {
		return int64(written), errors.Wrapf(ErrWrite, "%d of %d bytes: %v", written, len(buf), err)
	}
	return int64(written), nil
}

// Save writes the graph to a file. Returns the number of bytes
// written.
func (g *Graph) Save(filename string) (int64, error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, errors.Wrapf(ErrWrite, "create %s: %v", filename, err)
	}
	defer f.Close()
	return g.Write(f)
}

// Load reads a graph from r. It fails with ErrShortHeader,
// ErrBadMagic or ErrShortBody on truncated or foreign input.
func Load(r io.Reader) (*Graph, error) {
	var header [headerSize]byte
	if n, err := io.ReadFull(r, header[:]); err != nil {
		return nil, errors.Wrapf(ErrShortHeader, "expected %d bytes but got %d", headerSize, n)
	}

	magic := binary.LittleEndian.Uint32(header[0:4])
	if magic != magicNumber {
		return nil, errors.Wrapf(ErrBadMagic, "expected %#08x but got %#08x", uint32(magicNumber), magic)
	}

	count := int(binary.LittleEndian.Uint32(header[4:8]))
	body, err := io.ReadAll(io.LimitReader(r, int64(count)*edgeWordSize))
	if err != nil || len(body) != count*edgeWordSize {
		return nil, errors.Wrapf(ErrShortBody, "expected %d bytes but got %d", count*edgeWordSize, len(body))
	}

	edges := make([]Edge, count+1)
	for i := 0; i < count; i++ {
		edges[i] = Edge(binary.LittleEndian.Uint32(body[i*edgeWordSize:]))
	}
	edges[count].setChild(1)

	return &Graph{edges: edges}, nil
}

// Open loads a graph from a file through a memory map, so large
// dictionaries come in without read syscalls per chunk.
func Open(filename string) (*Graph, error) {
	r, err := mmap.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return Load(io.NewSectionReader(r, 0, int64(r.Len())))
}
