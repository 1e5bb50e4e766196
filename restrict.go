// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symlogic

// Restrict returns the result of fixing the variables occurring in varset to
// the value given by their polarity there (positive or negated), where
// varset is a node built with a method such as Makeset. This amounts to
// computing the cofactor of n with respect to the cube varset.
func (b *store) Restrict(n, varset Node) Node {
	if b.checkptr(n) != nil {
		return b.seterror("wrong node in call to Restrict (n: %d)", *n)
	}
	if b.checkptr(varset) != nil {
		return b.seterror("wrong varset in call to Restrict (%d)", *varset)
	}
	if *varset < 2 { // empty set, nothing to restrict
		return n
	}

	if err := b.restrictset2cache(*varset); err != nil {
		return nil
	}
	b.restrictcache.id = *varset << 1
	b.initref()
	b.pushref(*n)
	b.pushref(*varset)
	res := b.restrict(*n)
	b.popref(2)
	return b.retnode(res)
}

// restrictset2cache records, for every level occurring in the cube n, the
// polarity under which the corresponding variable occurs (1 if we follow the
// high branch, 0 if we follow the low branch).
func (b *store) restrictset2cache(n int) error {
	if n < 2 {
		b.seterror("illegal variable (%d) in varset to cache", n)
		return b.error
	}
	for i := range b.restrictset {
		b.restrictset[i] = -1
	}
	b.restrictlast = 0
	for i := n; i > 1; {
		level := b.nodes[i].level
		if b.nodes[i].low == 0 {
			b.restrictset[level] = 1
			i = b.nodes[i].high
		} else {
			b.restrictset[level] = 0
			i = b.nodes[i].low
		}
		if level > b.restrictlast {
			b.restrictlast = level
		}
	}
	return nil
}

func (b *store) restrict(n int) int {
	if n < 2 || b.level(n) > b.restrictlast {
		return n
	}
	polarity := b.restrictset[b.level(n)]
	if polarity >= 0 {
		if polarity == 1 {
			return b.restrict(b.high(n))
		}
		return b.restrict(b.low(n))
	}
	if res := b.matchrestrict(n); res >= 0 {
		return res
	}
	low := b.pushref(b.restrict(b.low(n)))
	high := b.pushref(b.restrict(b.high(n)))
	res := b.makenode(b.level(n), low, high)
	b.popref(2)
	return b.setrestrict(n, res)
}
