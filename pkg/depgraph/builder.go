package depgraph

// DefaultMaxDepth is the traversal depth used when none is configured.
const DefaultMaxDepth = 3

// Options configures [Build].
type Options struct {
	// RootPackage restricts traversal to the record with this exact name.
	// Empty means every record is a root.
	RootPackage string
	// MaxDepth is the number of dependency levels expanded below a root.
	// Zero yields the root nodes only; negative values are treated as zero.
	MaxDepth int
}

// Build constructs the dependency graph of records.
func Build(records []Record, opts Options) *Graph {
	b := newBuilder(records, max(opts.MaxDepth, 0))
	for i, rec := range records {
		if opts.RootPackage != "" && opts.RootPackage != rec.Name {
			continue
		}
		b.ensureNode(rec.Name).IsRoot = true
		b.traverse(i, 0)
	}
	return b.g
}

// builder owns the graph under construction.
type builder struct {
	g        *Graph
	records  []Record
	index    map[string]int
	maxDepth int
	// expanded holds, per record position, the shallowest depth at which
	// that record's dependencies have been walked. Records sharing a name
	// are tracked separately.
	expanded map[int]int
}

func newBuilder(records []Record, maxDepth int) *builder {
	index := make(map[string]int, len(records))
	for i, rec := range records {
		if _, dup := index[rec.Name]; !dup {
			index[rec.Name] = i
		}
	}
	return &builder{
		g:        newGraph(),
		records:  records,
		index:    index,
		maxDepth: maxDepth,
		expanded: make(map[int]int),
	}
}

// ensureNode returns the node for name, creating it on first use.
func (b *builder) ensureNode(name string) *Node {
	if n, ok := b.g.nodes[name]; ok {
		return n
	}
	n := &Node{Name: name}
	b.g.nodes[name] = n
	return n
}

// ensureEdge returns the edge from -> to, creating it and both endpoint
// nodes on first use.
func (b *builder) ensureEdge(from, to string) Edge {
	e := Edge{From: from, To: to}
	if _, ok := b.g.edges[e]; ok {
		return e
	}
	b.ensureNode(from)
	b.ensureNode(to)
	b.g.edges[e] = struct{}{}
	return e
}

// lookup finds the position of the record with exactly this name. The first
// record wins on duplicates.
func (b *builder) lookup(name string) (int, bool) {
	i, ok := b.index[name]
	return i, ok
}

// traverse walks the record at position i.
func (b *builder) traverse(i, depth int) {
	if depth >= b.maxDepth {
		return
	}
	b.g.stats.Visits++

	rec := b.records[i]
	n := b.ensureNode(rec.Name)
	if depth == 0 {
		n.IsRoot = true
	}

	if d, ok := b.expanded[i]; ok && d <= depth {
		b.g.stats.Skipped++
		return
	}
	b.expanded[i] = depth

	for _, name := range rec.Dependencies {
		j, ok := b.lookup(name)
		if !ok {
			continue
		}
		b.ensureEdge(rec.Name, name)
		b.traverse(j, depth+1)
	}
}
