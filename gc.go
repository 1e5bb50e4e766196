// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symlogic

// gcstat stores status information about garbage collections. We use a stack
// (slice) of objects to record the sequence of GC during a computation.
type gcstat struct {
	setfinalizers    uint64    // Total number of external references to BDD nodes
	calledfinalizers uint64    // Number of external references that were freed
	history          []gcpoint // Snaphot of GC stats at each occurrence
}

type gcpoint struct {
	nodes            int // Total number of allocated nodes in the nodetable
	freenodes        int // Number of free nodes in the nodetable
	setfinalizers    int // Total number of external references to BDD nodes
	calledfinalizers int // Number of external references that were freed
}

// *************************************************************************

// AddRef increases the reference count on node n and returns n so that calls
// can be easily chained together. A call to AddRef can never raise an error,
// even if we access an unused node or a value outside the range of the BDD.
//
// Reference counting is done on externaly referenced nodes only and the count
// for a specific node can and must be increased using this function to avoid
// loosing the node during garbage collection.
func (b *store) AddRef(n Node) Node {
	if *n < 2 {
		return n
	}
	if *n >= len(b.nodes) {
		return n
	}
	if b.nodes[*n].low == -1 {
		return n
	}
	if b.nodes[*n].refcou < _MAXREFCOUNT {
		b.nodes[*n].refcou++
	}
	return n
}

// DelRef decreases the reference count on a node and returns n so that calls
// can be easily chained together. A call to DelRef can never raise an error,
// even if we access an unused node or a value outside the range of the BDD.
//
// Like with AddRef, reference counting is done on externaly referenced nodes
// only and the count for a specific node can and must be decreased using this
// function to make it possible to reclaim the node during garbage collection.
func (b *store) DelRef(n Node) Node {
	if *n >= len(b.nodes) {
		return n
	}
	if b.nodes[*n].low == -1 {
		return n
	}
	if b.nodes[*n].refcou <= 0 {
		return n
	}
	if b.nodes[*n].refcou < _MAXREFCOUNT {
		b.nodes[*n].refcou--
	}
	return n
}

// *************************************************************************

// gbc is the garbage collector called for reclaiming memory, inside a call to
// makenode, when there are no free positions available. Allocated nodes that
// are not reclaimed do not move.
func (b *store) gbc() {
	b.log.Debug("starting GC")

	if b.error != nil {
		return
	}

	// We could explicitly ask the system to run its GC so that we can
	// decrement the ref counts of Nodes that had an external reference. This
	// is blocking, and frequent GC is time consuming, but with fewer GC we
	// can experience more resizing events.
	//
	// runtime.GC()

	b.gcstat.history = append(b.gcstat.history, gcpoint{
		nodes:            len(b.nodes),
		freenodes:        b.freenum,
		setfinalizers:    int(b.gcstat.setfinalizers),
		calledfinalizers: int(b.gcstat.calledfinalizers),
	})
	b.gcstat.setfinalizers = 0
	b.gcstat.calledfinalizers = 0

	// we mark the nodes in the refstack to avoid collecting them
	for _, r := range b.refstack {
		b.markrec(r)
	}
	// we also protect nodes with a positive refcount (and therefore also the
	// ones with a MAXREFCOUNT, such has variables)
	for k := range b.nodes {
		if b.nodes[k].refcou > 0 {
			b.markrec(k)
		}
		b.nodes[k].hash = 0
	}
	b.freepos = 0
	b.freenum = 0
	// we do a pass through the nodes list to update the hash chains and void
	// the unmarked nodes. After finishing this pass, b.freepos points to the
	// first free position in b.nodes, or it is 0 if we found none.
	for n := len(b.nodes) - 1; n > 1; n-- {
		if b.ismarked(n) && (b.nodes[n].low != -1) {
			b.unmarknode(n)
			hash := b.ptrhash(n)
			b.nodes[n].next = b.nodes[hash].hash
			b.nodes[hash].hash = n
		} else {
			b.nodes[n].low = -1
			b.nodes[n].next = b.freepos
			b.freepos = n
			b.freenum++
		}
	}
	// we also invalidate the caches
	b.cachereset()
	b.log.WithField("freenum", b.freenum).Debug("end GC")
}

// *************************************************************************
// RECURSIVE MARK / UNMARK

func (b *store) markrec(n int) {
	if n < 2 || b.ismarked(n) || (b.nodes[n].low == -1) {
		return
	}
	b.marknode(n)
	b.markrec(b.nodes[n].low)
	b.markrec(b.nodes[n].high)
}

// markcount marks and returns the number of successors of node n, used to
// size the node list built before exporting a BDD.
func (b *store) markcount(n int) int {
	if n < 2 {
		return 0
	}
	if b.ismarked(n) || (b.nodes[n].low == -1) {
		return 0
	}
	b.marknode(n)
	return 1 + b.markcount(b.nodes[n].low) + b.markcount(b.nodes[n].high)
}

func (b *store) unmarkall() {
	for k, v := range b.nodes {
		if k < 2 || !b.ismarked(k) || (v.low == -1) {
			continue
		}
		b.unmarknode(k)
	}
}

// *************************************************************************
// private functions to manipulate the refstack; used to prevent nodes that are
// currently being built (e.g. transient nodes built during an apply) to be
// reclaimed during GC.

func (b *store) initref() {
	b.refstack = b.refstack[:0]
}

func (b *store) pushref(n int) int {
	b.refstack = append(b.refstack, n)
	return n
}

func (b *store) popref(a int) {
	b.refstack = b.refstack[:len(b.refstack)-a]
}
