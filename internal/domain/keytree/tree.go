// Package keytree holds the recursive key structure shared by discovered keys
// and persisted catalogs, together with the structural merge and diff
// operations used to reconcile them.
package keytree

// Node is either a Leaf or a *Branch.
type Node interface {
	node()
}

// Leaf is a translated (or still empty) value.
type Leaf string

func (Leaf) node() {}

// Branch maps key segments to child nodes and remembers insertion order.
// The zero value is not usable; call New.
type Branch struct {
	keys     []string
	children map[string]Node
}

func (*Branch) node() {}

// New returns an empty Branch.
func New() *Branch {
	return &Branch{children: make(map[string]Node)}
}

// FromLeaves builds a flat Branch from a key/value map. Keys are added in the
// order given by order; values missing from m become empty leaves.
func FromLeaves(order []string, m map[string]string) *Branch {
	b := New()
	for _, k := range order {
		b.Set(k, Leaf(m[k]))
	}
	return b
}

// Len returns the number of direct children.
func (b *Branch) Len() int {
	return len(b.keys)
}

// Keys returns the child keys in insertion order.
func (b *Branch) Keys() []string {
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Get returns the child stored under key.
func (b *Branch) Get(key string) (Node, bool) {
	n, ok := b.children[key]
	return n, ok
}

// Set stores n under key. An existing key keeps its position.
func (b *Branch) Set(key string, n Node) {
	if _, ok := b.children[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.children[key] = n
}

// Delete removes key if present.
func (b *Branch) Delete(key string) {
	if _, ok := b.children[key]; !ok {
		return
	}
	delete(b.children, key)
	for i, k := range b.keys {
		if k == key {
			b.keys = append(b.keys[:i], b.keys[i+1:]...)
			break
		}
	}
}

// SetPath stores n at the nested position described by path, creating
// intermediate branches and replacing leaves that stand in the way.
func (b *Branch) SetPath(path []string, n Node) {
	if len(path) == 0 {
		return
	}
	cur := b
	for _, seg := range path[:len(path)-1] {
		next, ok := cur.children[seg].(*Branch)
		if !ok {
			next = New()
			cur.Set(seg, next)
		}
		cur = next
	}
	cur.Set(path[len(path)-1], n)
}

// Clone returns a deep copy.
func (b *Branch) Clone() *Branch {
	out := &Branch{
		keys:     make([]string, len(b.keys)),
		children: make(map[string]Node, len(b.children)),
	}
	copy(out.keys, b.keys)
	for k, n := range b.children {
		out.children[k] = cloneNode(n)
	}
	return out
}

// CountLeaves returns the number of leaves in the whole tree.
func (b *Branch) CountLeaves() int {
	total := 0
	for _, n := range b.children {
		switch v := n.(type) {
		case Leaf:
			total++
		case *Branch:
			total += v.CountLeaves()
		}
	}
	return total
}

// Walk visits every leaf depth-first in insertion order. The path slice is
// reused between calls; copy it to keep it.
func (b *Branch) Walk(fn func(path []string, leaf Leaf)) {
	b.walk(nil, fn)
}

func (b *Branch) walk(prefix []string, fn func([]string, Leaf)) {
	for _, k := range b.keys {
		path := append(prefix, k)
		switch v := b.children[k].(type) {
		case Leaf:
			fn(path, v)
		case *Branch:
			v.walk(path, fn)
		}
	}
}

// ToMap converts the tree to plain maps, mostly for debug output.
func (b *Branch) ToMap() map[string]any {
	out := make(map[string]any, len(b.children))
	for k, n := range b.children {
		switch v := n.(type) {
		case Leaf:
			out[k] = string(v)
		case *Branch:
			out[k] = v.ToMap()
		}
	}
	return out
}

func cloneNode(n Node) Node {
	switch v := n.(type) {
	case *Branch:
		return v.Clone()
	default:
		return v
	}
}
