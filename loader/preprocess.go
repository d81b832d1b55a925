package loader

import (
	"encoding/binary"
	"io"

	"github.com/johnpzh/Galois/enforce"
	"github.com/johnpzh/Galois/utils"
)

// DecodeInt32Capacity reads a little-endian int32 residual capacity from
// a 4-byte edge-data record, the edge payload preflow-push loads.
func DecodeInt32Capacity(raw []byte) int32 {
	return int32(binary.LittleEndian.Uint32(raw))
}

type rawEdge struct {
	src, dst uint32
	capacity int32
}

// Preprocess reads a plain CSR file at srcPath (edge data interpreted as
// a 4-byte little-endian capacity) and writes a ".gr.pfp" variant at
// dstPath that: drops self-loops, materializes a zero-capacity reverse
// edge for every forward edge lacking one, and sorts each adjacency run
// by destination id. useSymmetricDirectly skips reverse-edge synthesis
// (the input is assumed already symmetric) but still drops self-loops
// and re-sorts.
func Preprocess(srcPath, dstPath string, useSymmetricDirectly bool) {
	f := utils.OpenFile(srcPath)
	defer f.Close()

	hdr := readHeader(f)
	nodeIndex := make([]uint64, hdr.NumNodes+1)
	enforce.ENFORCE(binary.Read(f, binary.LittleEndian, nodeIndex), "preprocess: reading node index")
	dst := make([]uint32, hdr.NumEdges)
	enforce.ENFORCE(binary.Read(f, binary.LittleEndian, dst), "preprocess: reading destination array")

	rawSize := int(hdr.NumEdges) * 4 // destination array, padded to 8 bytes
	if pad := padTo8(rawSize) - rawSize; pad > 0 {
		_, err := io.CopyN(io.Discard, f, int64(pad))
		enforce.ENFORCE(err, "preprocess: skipping padding")
	}

	edges := make([]rawEdge, 0, hdr.NumEdges)
	present := map[[2]uint32]bool{}
	edgeRaw := make([]byte, hdr.EdgeDataSize)
	for u := uint64(0); u < hdr.NumNodes; u++ {
		start, end := nodeIndex[u], nodeIndex[u+1]
		for e := start; e < end; e++ {
			v := dst[e]
			var cap int32
			if hdr.EdgeDataSize >= 4 {
				_, err := io.ReadFull(f, edgeRaw)
				enforce.ENFORCE(err, "preprocess: reading edge data")
				cap = DecodeInt32Capacity(edgeRaw)
			}
			if uint32(u) == v {
				continue // drop self-loops
			}
			edges = append(edges, rawEdge{src: uint32(u), dst: v, capacity: cap})
			present[[2]uint32{uint32(u), v}] = true
		}
	}

	if !useSymmetricDirectly {
		extra := make([]rawEdge, 0)
		for _, e := range edges {
			if !present[[2]uint32{e.dst, e.src}] {
				extra = append(extra, rawEdge{src: e.dst, dst: e.src, capacity: 0})
				present[[2]uint32{e.dst, e.src}] = true
			}
		}
		edges = append(edges, extra...)
	}

	writeGrPfp(dstPath, int(hdr.NumNodes), edges)
}

func writeGrPfp(path string, numNodes int, edges []rawEdge) {
	byNode := make([][]rawEdge, numNodes)
	for _, e := range edges {
		byNode[e.src] = append(byNode[e.src], e)
	}
	for n := range byNode {
		run := byNode[n]
		for i := 1; i < len(run); i++ {
			for j := i; j > 0 && run[j].dst < run[j-1].dst; j-- {
				run[j], run[j-1] = run[j-1], run[j]
			}
		}
	}

	out := utils.CreateFile(path)
	defer out.Close()

	numEdges := len(edges)
	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(header[0:4], 1)
	binary.LittleEndian.PutUint32(header[4:8], 4)
	binary.LittleEndian.PutUint64(header[8:16], uint64(numNodes))
	binary.LittleEndian.PutUint64(header[16:24], uint64(numEdges))
	_, err := out.Write(header)
	enforce.ENFORCE(err, "preprocess: writing header")

	nodeIndex := make([]uint64, numNodes+1)
	cursor := uint64(0)
	for n := 0; n < numNodes; n++ {
		nodeIndex[n] = cursor
		cursor += uint64(len(byNode[n]))
	}
	nodeIndex[numNodes] = cursor
	enforce.ENFORCE(binary.Write(out, binary.LittleEndian, nodeIndex), "preprocess: writing node index")

	dstOut := make([]uint32, 0, numEdges)
	for n := 0; n < numNodes; n++ {
		for _, e := range byNode[n] {
			dstOut = append(dstOut, e.dst)
		}
	}
	enforce.ENFORCE(binary.Write(out, binary.LittleEndian, dstOut), "preprocess: writing destination array")

	rawSize := numEdges * 4
	if pad := padTo8(rawSize) - rawSize; pad > 0 {
		_, err := out.Write(make([]byte, pad))
		enforce.ENFORCE(err, "preprocess: writing padding")
	}

	for n := 0; n < numNodes; n++ {
		for _, e := range byNode[n] {
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], uint32(e.capacity))
			_, err := out.Write(buf[:])
			enforce.ENFORCE(err, "preprocess: writing edge data")
		}
	}
}
