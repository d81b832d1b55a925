package graphstore

// Builder accumulates (src, dst, edgeData) triples and edge counts per
// node, then finalizes into a Graph's CSR arrays. A Graph's arrays are
// unexported, so code outside this package, including the binary CSR
// loader, builds every populated Graph through a Builder.
type Builder[V any, E any] struct {
	numNodes int
	nodeData []V
	outEdges [][]builderEdge[E]
}

type builderEdge[E any] struct {
	dst  uint32
	data E
}

func NewBuilder[V any, E any](numNodes int) *Builder[V, E] {
	return &Builder[V, E]{
		numNodes: numNodes,
		nodeData: make([]V, numNodes),
		outEdges: make([][]builderEdge[E], numNodes),
	}
}

func (b *Builder[V, E]) SetNodeData(n NodeID, data V) {
	b.nodeData[n] = data
}

func (b *Builder[V, E]) AddEdge(src NodeID, dst NodeID, data E) {
	b.outEdges[src] = append(b.outEdges[src], builderEdge[E]{dst: uint32(dst), data: data})
}

// Build finalizes the CSR arrays and sorts each adjacency run by
// destination id, matching the loader's invariant.
func (b *Builder[V, E]) Build() *Graph[V, E] {
	g := NewGraph[V, E](b.numNodes)
	copy(g.nodeData, b.nodeData)

	total := 0
	for n := 0; n < b.numNodes; n++ {
		total += len(b.outEdges[n])
	}
	g.dst = make([]uint32, 0, total)
	g.edgeData = make([]E, 0, total)

	for n := 0; n < b.numNodes; n++ {
		g.nodeIndex[n] = uint32(len(g.dst))
		for _, e := range b.outEdges[n] {
			g.dst = append(g.dst, e.dst)
			g.edgeData = append(g.edgeData, e.data)
		}
	}
	g.nodeIndex[b.numNodes] = uint32(len(g.dst))

	g.SortEdgesByDst()
	return g
}
