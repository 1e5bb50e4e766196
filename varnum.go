// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symlogic

// setVarnum sets the number of BDD variables. We call this function only once
// during initialization and generate the list used for Ithvar and NIthvar.
func (b *store) setVarnum(num int) error {
	inum := int32(num)
	if (inum < 1) || (inum > _MAXVAR) {
		b.seterror("bad number of variable (%d) in setVarnum", inum)
		return b.error
	}
	b.varnum = inum
	b.varset = make([][2]int, inum)

	// Constants always have the highest level.
	b.nodes[0].level = inum
	b.nodes[1].level = inum

	b.refstack = make([]int, 0, 2*inum+4)
	b.initref()
	for k := int32(0); k < inum; k++ {
		v0 := b.makenode(k, 0, 1)
		if v0 < 0 {
			b.seterror("cannot allocate new variable %d in setVarnum; %s", b.varnum, b.error)
			return b.error
		}
		b.pushref(v0)
		v1 := b.makenode(k, 1, 0)
		if v1 < 0 {
			b.seterror("cannot allocate new variable %d in setVarnum; %s", b.varnum, b.error)
			return b.error
		}
		b.popref(1)
		b.varset[k] = [2]int{v0, v1}
		b.nodes[b.varset[k][0]].refcou = _MAXREFCOUNT
		b.nodes[b.varset[k][1]].refcou = _MAXREFCOUNT
	}

	b.quantset = make([]int32, b.varnum)
	b.quantsetID = 0

	b.restrictset = make([]int32, b.varnum)

	b.log.WithField("varnum", b.varnum).Debug("set varnum")
	return nil
}
