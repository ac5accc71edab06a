package keytree

// Diff returns the part of left that right does not have. Keys present on both
// sides as branches are compared recursively and kept only when the nested
// difference is non-empty. Keys absent from right are copied whole. A key that
// is a leaf on one side and a branch on the other is not part of the result.
//
// Diff(current, discovered) yields stale entries; Diff(discovered, current)
// yields entries that still need a value.
func Diff(left, right *Branch) *Branch {
	out := New()
	for _, k := range left.keys {
		ln := left.children[k]
		rn, ok := right.children[k]
		if !ok {
			out.Set(k, cloneNode(ln))
			continue
		}
		lb, lok := ln.(*Branch)
		rb, rok := rn.(*Branch)
		if lok && rok {
			if sub := Diff(lb, rb); sub.Len() > 0 {
				out.Set(k, sub)
			}
		}
	}
	return out
}

// Prune returns a copy of current without the entries listed in removed.
// Branches emptied by the removal are dropped as well.
func Prune(current, removed *Branch) *Branch {
	out := current.Clone()
	prune(out, removed)
	return out
}

func prune(current, removed *Branch) {
	for _, k := range removed.keys {
		cn, ok := current.children[k]
		if !ok {
			continue
		}
		cb, cIsBranch := cn.(*Branch)
		rb, rIsBranch := removed.children[k].(*Branch)
		if cIsBranch && rIsBranch {
			prune(cb, rb)
			if cb.Len() == 0 {
				current.Delete(k)
			}
			continue
		}
		current.Delete(k)
	}
}

// Merge returns the additive union of base and extra. Existing leaves in base
// keep their value. When one side has a leaf and the other a branch for the
// same key, the branch wins.
func Merge(base, extra *Branch) *Branch {
	out := base.Clone()
	merge(out, extra)
	return out
}

func merge(dst, src *Branch) {
	for _, k := range src.keys {
		sn := src.children[k]
		dn, ok := dst.children[k]
		if !ok {
			dst.Set(k, cloneNode(sn))
			continue
		}
		db, dIsBranch := dn.(*Branch)
		sb, sIsBranch := sn.(*Branch)
		switch {
		case dIsBranch && sIsBranch:
			merge(db, sb)
		case sIsBranch:
			dst.Set(k, sb.Clone())
		}
	}
}
