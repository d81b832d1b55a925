// Package loader reads the binary CSR graph format the runtime consumes:
// a little-endian header, a node-index array, a destination array, and
// (unless bypassed) an edge-data array. Constructing a graphstore.Graph
// from bytes on disk is treated as an injected dependency by the
// algorithm packages — they only ever see a *graphstore.Graph — so this
// package's only job is producing one correctly.
package loader

import (
	"encoding/binary"
	"io"

	"github.com/johnpzh/Galois/enforce"
	"github.com/johnpzh/Galois/graphstore"
	"github.com/johnpzh/Galois/utils"
)

// Header is the fixed-size preamble of a CSR file.
type Header struct {
	Version      uint32
	EdgeDataSize uint32
	NumNodes     uint64
	NumEdges     uint64
}

const headerSize = 4 + 4 + 8 + 8

func readHeader(r io.Reader) Header {
	buf := make([]byte, headerSize)
	_, err := io.ReadFull(r, buf)
	enforce.ENFORCE(err, "loader: reading header")
	return Header{
		Version:      binary.LittleEndian.Uint32(buf[0:4]),
		EdgeDataSize: binary.LittleEndian.Uint32(buf[4:8]),
		NumNodes:     binary.LittleEndian.Uint64(buf[8:16]),
		NumEdges:     binary.LittleEndian.Uint64(buf[16:24]),
	}
}

func padTo8(n int) int {
	if rem := n % 8; rem != 0 {
		return n + (8 - rem)
	}
	return n
}

// EdgeDataDecoder turns the raw per-edge byte slice at edge-data offset
// e*Header.EdgeDataSize into an E value. Callers whose E is not itself a
// fixed-size POD type must supply one; DecodeInt32Capacity covers the
// common preflow-push case directly.
type EdgeDataDecoder[E any] func(raw []byte) E

// Load reads a CSR file at path into a Graph[V, E], applying nodeInit to
// every node and decode to every edge's raw data unless
// bypassEdgeData is set, in which case decode is never called and E's
// zero value is used for every edge (the "symmetric-with-unit-capacity"
// fast path spec section 6 describes).
func Load[V any, E any](path string, nodeInit func(id graphstore.NodeID) V, decode EdgeDataDecoder[E], bypassEdgeData bool) *graphstore.Graph[V, E] {
	f := utils.OpenFile(path)
	defer f.Close()

	hdr := readHeader(f)

	nodeIndex := make([]uint64, hdr.NumNodes+1)
	enforce.ENFORCE(binary.Read(f, binary.LittleEndian, nodeIndex), "loader: reading node index")

	dst := make([]uint32, hdr.NumEdges)
	enforce.ENFORCE(binary.Read(f, binary.LittleEndian, dst), "loader: reading destination array")

	rawSize := int(hdr.NumEdges) * 4 // destination array, padded to 8 bytes
	if pad := padTo8(rawSize) - rawSize; pad > 0 {
		_, err := io.CopyN(io.Discard, f, int64(pad))
		enforce.ENFORCE(err, "loader: skipping padding")
	}

	b := graphstore.NewBuilder[V, E](int(hdr.NumNodes))
	for n := uint64(0); n < hdr.NumNodes; n++ {
		b.SetNodeData(graphstore.NodeID(n), nodeInit(graphstore.NodeID(n)))
	}

	edgeRaw := make([]byte, hdr.EdgeDataSize)
	for u := uint64(0); u < hdr.NumNodes; u++ {
		start, end := nodeIndex[u], nodeIndex[u+1]
		for e := start; e < end; e++ {
			var data E
			if !bypassEdgeData && hdr.EdgeDataSize > 0 {
				_, err := io.ReadFull(f, edgeRaw)
				enforce.ENFORCE(err, "loader: reading edge data")
				data = decode(edgeRaw)
			}
			b.AddEdge(graphstore.NodeID(u), graphstore.NodeID(dst[e]), data)
		}
	}
	return b.Build()
}
