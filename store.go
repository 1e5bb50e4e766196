// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symlogic

import (
	"fmt"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// store is the concrete implementation of BDD: a hash-consed node table
// together with the operation caches and reference-counting bookkeeping
// needed to reclaim unused nodes. There used to be two interchangeable
// implementations here, one using Go's runtime hashmap for the unique table
// and one using an open-addressed array in the style of the BuDDy library;
// we kept only the array-based unique table (hash and next fields directly on
// buddyNode) since nothing in this repository benefits from carrying both.
type store struct {
	varnum   int32    // number of BDD variables
	varset   [][2]int // pair of (positive, negative) node for each variable
	refstack []int    // internal node reference stack, protects in-flight recursions from gbc
	error    error    // sticky error status, sets on the first failure in a chain of operations

	nodes           []buddyNode // node table; indices 0 and 1 are the constants
	freenum         int         // number of free nodes
	freepos         int         // first free node
	produced        int         // total number of new nodes ever produced
	maxnodesize     int         // maximum total number of nodes (0: no limit)
	maxnodeincrease int         // maximum increase in node table size per resize (0: no limit)
	minfreenodes    int         // % of free nodes required after a gc before a resize is triggered
	nodefinalizer   interface{} // finalizer used to decrement the ref count of external references

	quantset   []int32 // current variable set used during quantification
	quantsetID int32   // current id for quantset, bumped on every new quantification
	quantlast  int32   // highest level present in the current quantset

	restrictset  []int32 // per-level polarity (0, 1) of the current restrict varset, -1 if absent
	restrictlast int32   // highest level present in the current restrict varset

	applycache    *applycache
	itecache      *itecache
	quantcache    *quantcache
	appexcache    *appexcache
	replacecache  *replacecache
	restrictcache *restrictcache

	gcstat
	cacheStat

	log *logrus.Entry
}

// ************************************************************

// New creates a fresh BDD store with varnum variables, indexed 0 to
// varnum-1. The optional parameters configure the initial size of the node
// table and operation caches; see Nodesize, Maxnodesize, Maxnodeincrease,
// Minfreenodes, Cachesize and Cacheratio.
func New(varnum int, opts ...func(*configs)) (Set, error) {
	if (varnum < 1) || (int32(varnum) > _MAXVAR) {
		return Set{}, errors.Errorf("bad number of variables (%d)", varnum)
	}
	c := makeconfigs(varnum)
	for _, opt := range opts {
		opt(c)
	}

	b := &store{}
	b.log = logrus.WithField("component", "bdd")
	b.maxnodesize = c.maxnodesize
	b.maxnodeincrease = c.maxnodeincrease
	b.minfreenodes = c.minfreenodes

	nodesize := bdd_prime_gte(c.nodesize)
	b.nodes = make([]buddyNode, nodesize)
	for k := range b.nodes {
		b.nodes[k] = buddyNode{low: -1, next: k + 1}
	}
	b.nodes[nodesize-1].next = 0
	b.nodes[0] = buddyNode{refcou: _MAXREFCOUNT, low: 0, high: 0}
	b.nodes[1] = buddyNode{refcou: _MAXREFCOUNT, low: 1, high: 1}
	b.freepos = 2
	b.freenum = nodesize - 2

	b.cacheinit(c.cachesize)
	b.applycache.cacheratio = c.cacheratio
	b.itecache.cacheratio = c.cacheratio
	b.quantcache.cacheratio = c.cacheratio
	b.appexcache.cacheratio = c.cacheratio
	b.replacecache.cacheratio = c.cacheratio
	b.restrictcache.cacheratio = c.cacheratio

	b.gcstat.history = make([]gcpoint, 0)
	b.nodefinalizer = func(n *int) {
		b.gcstat.calledfinalizers++
		b.nodes[*n].refcou--
	}

	if err := b.setVarnum(varnum); err != nil {
		return Set{}, err
	}
	b.log.WithField("varnum", varnum).Debug("created bdd store")
	return Set{b}, nil
}

// ************************************************************

func (b *store) checkptr(n Node) error {
	if n == nil {
		return errors.New("nil node")
	}
	if *n < 0 || *n >= len(b.nodes) {
		return errors.Errorf("node %d out of range", *n)
	}
	if *n > 1 && b.nodes[*n].low == -1 {
		return errors.Errorf("node %d is not allocated", *n)
	}
	return nil
}

func (b *store) level(n int) int32 {
	return b.nodes[n].level
}

func (b *store) low(n int) int {
	return b.nodes[n].low
}

func (b *store) high(n int) int {
	return b.nodes[n].high
}

// retnode creates a Node for external use and sets a finalizer on it so we
// can decrement its reference count and, eventually, reclaim the node during
// a future gbc.
func (b *store) retnode(n int) Node {
	if n < 0 || n >= len(b.nodes) {
		b.seterror("internal error, retnode(%d) not valid", n)
		return nil
	}
	if n == 0 {
		return bddzero
	}
	if n == 1 {
		return bddone
	}
	x := n
	if b.nodes[n].refcou < _MAXREFCOUNT {
		b.nodes[n].refcou++
		runtime.SetFinalizer(&x, b.nodefinalizer)
		b.gcstat.setfinalizers++
	}
	return &x
}

// makenode returns the (hash-consed) node for the triplet (level, low, high),
// building a new one if none exists yet. It triggers a garbage collection,
// and possibly a resize of the node table, when there is no free slot left.
func (b *store) makenode(level int32, low int, high int) int {
	b.uniqueAccess++
	if low == high {
		return low
	}
	hash := b.nodehash(level, low, high)
	res := b.nodes[hash].hash
	for res != 0 {
		if b.nodes[res].level == level && b.nodes[res].low == low && b.nodes[res].high == high {
			b.uniqueHit++
			return res
		}
		res = b.nodes[res].next
		b.uniqueChain++
	}
	b.uniqueMiss++
	if b.freepos == 0 {
		b.gbc()
		if (b.freenum*100)/len(b.nodes) <= b.minfreenodes {
			if err := b.noderesize(); err != nil && err != errResize {
				b.seterror("unable to resize BDD: %s", err)
				return -1
			}
			hash = b.nodehash(level, low, high)
		}
		if b.freepos == 0 {
			b.seterror("unable to free memory or resize BDD")
			return -1
		}
	}
	res = b.freepos
	b.freepos = b.nodes[b.freepos].next
	b.freenum--
	b.produced++
	b.nodes[res].level = level
	b.nodes[res].low = low
	b.nodes[res].high = high
	b.nodes[res].next = b.nodes[hash].hash
	b.nodes[hash].hash = res
	return res
}

// noderesize doubles (within the configured bounds) the size of the node
// table and rebuilds the unique-table hash chains from scratch.
func (b *store) noderesize() error {
	oldsize := len(b.nodes)
	nodesize := oldsize
	if oldsize >= b.maxnodesize && b.maxnodesize > 0 {
		return errMemory
	}
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32 - 1
	} else {
		nodesize = nodesize << 1
	}
	if b.maxnodeincrease > 0 && nodesize > (oldsize+b.maxnodeincrease) {
		nodesize = oldsize + b.maxnodeincrease
	}
	if nodesize > b.maxnodesize && b.maxnodesize > 0 {
		nodesize = b.maxnodesize
	}
	if nodesize <= oldsize {
		return errMemory
	}

	tmp := b.nodes
	b.nodes = make([]buddyNode, nodesize)
	copy(b.nodes, tmp)
	for n := oldsize; n < nodesize; n++ {
		b.nodes[n] = buddyNode{low: -1, next: n + 1}
	}
	b.nodes[nodesize-1].next = 0

	b.freepos = 0
	b.freenum = 0
	for n := range b.nodes {
		b.nodes[n].hash = 0
	}
	for n := nodesize - 1; n > 1; n-- {
		if b.nodes[n].low != -1 {
			hash := b.ptrhash(n)
			b.nodes[n].next = b.nodes[hash].hash
			b.nodes[hash].hash = n
		} else {
			b.nodes[n].next = b.freepos
			b.freepos = n
			b.freenum++
		}
	}
	b.cacheresize()
	b.log.WithField("size", len(b.nodes)).Debug("resized node table")
	return errResize
}

// ************************************************************

// SetVarnum sets the number of BDD variables. It may be called more than
// once, but only to increase the number of variables.
func (b *store) SetVarnum(num int) error {
	return b.setVarnum(num)
}

// Varnum returns the number of defined variables.
func (b *store) Varnum() int {
	return int(b.varnum)
}

// Ithvar returns a BDD representing the i'th variable on success, otherwise
// we set the error status in the BDD and return the constant False. The
// requested variable must be in the range [0..Varnum).
func (b *store) Ithvar(i int) Node {
	if (i < 0) || (int32(i) >= b.varnum) {
		b.seterror("unknown variable used (%d) in call to Ithvar", i)
		return bddzero
	}
	return inode(b.varset[i][0])
}

// NIthvar returns a bdd representing the negation of the i'th variable on
// success, otherwise the constant false bdd. See Ithvar for further info.
func (b *store) NIthvar(i int) Node {
	if (i < 0) || (int32(i) >= b.varnum) {
		b.seterror("unknown variable used (%d) in call to NIthvar", i)
		return bddzero
	}
	return inode(b.varset[i][1])
}

// Label returns the variable (index) corresponding to node n in the BDD. We
// set the BDD to its error state and return -1 if we try to access a
// constant node.
func (b *store) Label(n Node) int {
	if b.checkptr(n) != nil {
		b.seterror("illegal access to node %d in call to Label", n)
		return -1
	}
	if *n < 2 {
		b.seterror("cannot access label of a constant node")
		return -1
	}
	return int(b.nodes[*n].level)
}

// Low returns the false branch of a BDD.
func (b *store) Low(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("illegal access to node %d in call to Low", n)
	}
	return b.retnode(b.nodes[*n].low)
}

// High returns the true branch of a BDD.
func (b *store) High(n Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("illegal access to node %d in call to High", n)
	}
	return b.retnode(b.nodes[*n].high)
}

// True returns the Node for the constant true.
func (b *store) True() Node {
	return bddone
}

// False returns the Node for the constant false.
func (b *store) False() Node {
	return bddzero
}

// From returns a (constant) Node from a boolean value.
func (b *store) From(v bool) Node {
	if v {
		return bddone
	}
	return bddzero
}

// Stats returns a textual summary of the node table and cache usage.
func (b *store) Stats() string {
	r := (float64(b.freenum) / float64(len(b.nodes))) * 100
	res := fmt.Sprintf("Varnum:     %d\n", b.varnum)
	res += fmt.Sprintf("Allocated:  %d\n", len(b.nodes))
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", b.freenum, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", len(b.nodes)-b.freenum, 100.0-r)
	res += "==============\n"
	res += fmt.Sprintf("# of GC:    %d\n", len(b.gcstat.history))
	allocated := b.gcstat.setfinalizers
	reclaimed := b.gcstat.calledfinalizers
	for _, g := range b.gcstat.history {
		allocated += uint64(g.setfinalizers)
		reclaimed += uint64(g.calledfinalizers)
	}
	res += fmt.Sprintf("Ext. refs:  %d\n", allocated)
	res += fmt.Sprintf("Reclaimed:  %d\n", reclaimed)
	res += "==============\n"
	res += b.cacheStat.String()
	return res
}
