package dynamo

// Bond is one entry of an atom's bond multiset.
type Bond struct {
	Partner AtomID
	Order   int
}

// Bonds lists each bonded partner once with its bond order, in the order the
// partners were first bonded.
type Bonds []Bond

func (b Bonds) Order(id AtomID) int {
	for _, e := range b {
		if e.Partner == id {
			return e.Order
		}
	}
	return 0
}

// Count is the bond-order sum.
func (b Bonds) Count() int {
	n := 0
	for _, e := range b {
		n += e.Order
	}
	return n
}

func (b Bonds) Partners() []AtomID {
	out := make([]AtomID, len(b))
	for i, e := range b {
		out[i] = e.Partner
	}
	return out
}

// Flat expands the multiset into a list where each partner repeats once per
// bond order.
func (b Bonds) Flat() []AtomID {
	out := make([]AtomID, 0, b.Count())
	for _, e := range b {
		for i := 0; i < e.Order; i++ {
			out = append(out, e.Partner)
		}
	}
	return out
}

func (b Bonds) Clone() Bonds {
	if b == nil {
		return nil
	}
	out := make(Bonds, len(b))
	copy(out, b)
	return out
}

func (b *Bonds) inc(id AtomID) {
	for i := range *b {
		if (*b)[i].Partner == id {
			(*b)[i].Order++
			return
		}
	}
	*b = append(*b, Bond{Partner: id, Order: 1})
}

func (b *Bonds) dec(id AtomID) bool {
	for i := range *b {
		if (*b)[i].Partner != id {
			continue
		}
		(*b)[i].Order--
		if (*b)[i].Order <= 0 {
			*b = append((*b)[:i], (*b)[i+1:]...)
		}
		return true
	}
	return false
}

func (b *Bonds) drop(id AtomID) {
	for i := range *b {
		if (*b)[i].Partner == id {
			*b = append((*b)[:i], (*b)[i+1:]...)
			return
		}
	}
}

// Link raises the bond order between a and b by one. Guarding against orders
// above three is the caller's job.
func Link(a, b *Atom) {
	if a == nil || b == nil || a == b {
		return
	}
	a.Bonds.inc(b.ID)
	b.Bonds.inc(a.ID)
}

// Sever removes every order of bond between a and b.
func Sever(a, b *Atom) {
	if a == nil || b == nil {
		return
	}
	a.Bonds.drop(b.ID)
	b.Bonds.drop(a.ID)
}

// Weaken lowers the bond order between a and b by one and reports whether a
// bond existed.
func Weaken(a, b *Atom) bool {
	if a == nil || b == nil || a.Bonds.Order(b.ID) == 0 {
		return false
	}
	a.Bonds.dec(b.ID)
	b.Bonds.dec(a.ID)
	return true
}
