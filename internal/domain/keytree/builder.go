package keytree

import "strings"

// DefaultNamespace names the flat catalog that holds keys without a namespace.
const DefaultNamespace = ""

// NamespaceChecker reports whether a catalog for the namespace is available.
// Implementations may create the catalog on demand.
type NamespaceChecker interface {
	HasNamespace(namespace string) bool
}

// NamespaceCheckerFunc adapts a function to NamespaceChecker.
type NamespaceCheckerFunc func(namespace string) bool

// HasNamespace calls f.
func (f NamespaceCheckerFunc) HasNamespace(namespace string) bool {
	return f(namespace)
}

// Demotion records a namespaced key stored in the default catalog because its
// namespace catalog is missing.
type Demotion struct {
	Key       string
	Namespace string
}

// Partition is the discovered key set split by target catalog. Order lists the
// namespaces in first-seen order.
type Partition struct {
	Default    *Branch
	Namespaces map[string]*Branch
	Order      []string
	Demoted    []Demotion
}

// Build partitions raw keys into the default flat catalog and one nested tree
// per namespace. Every key gets an empty leaf value.
//
// A key stays flat when it has neither a dot nor "::" (ignoring trailing dots),
// or when the character after its first dot is a space. Otherwise the segment
// before the first dot names the namespace; when checker does not know it the
// key is demoted to the default catalog.
func Build(keys []string, checker NamespaceChecker) *Partition {
	p := &Partition{
		Default:    New(),
		Namespaces: make(map[string]*Branch),
	}
	known := make(map[string]bool)

	for _, key := range keys {
		parent, child := splitFirst(key)
		if isFlat(key, child) || parent == "" {
			p.Default.Set(key, Leaf(""))
			continue
		}

		exists, seen := known[parent]
		if !seen {
			exists = checker.HasNamespace(parent)
			known[parent] = exists
		}
		if !exists {
			p.Default.Set(key, Leaf(""))
			p.Demoted = append(p.Demoted, Demotion{Key: key, Namespace: parent})
			continue
		}

		tree, ok := p.Namespaces[parent]
		if !ok {
			tree = New()
			p.Namespaces[parent] = tree
			p.Order = append(p.Order, parent)
		}
		merge(tree, explode(child, Leaf("")))
	}
	return p
}

// explode turns "a.b.c" into {a: {b: {c: value}}}. A segment whose remainder
// starts with a space is kept whole.
func explode(key string, value Node) *Branch {
	out := New()
	parent, child := splitFirst(key)
	if !strings.Contains(strings.TrimRight(key, "."), ".") || strings.HasPrefix(child, " ") {
		out.Set(key, value)
		return out
	}
	if strings.Contains(strings.TrimRight(child, "."), ".") {
		out.Set(parent, explode(child, value))
		return out
	}
	sub := New()
	sub.Set(child, value)
	out.Set(parent, sub)
	return out
}

// splitFirst splits at the first dot. Without a dot both halves are the key.
func splitFirst(key string) (parent, child string) {
	if i := strings.IndexByte(key, '.'); i >= 0 {
		return key[:i], key[i+1:]
	}
	return key, key
}

func isFlat(key, child string) bool {
	trimmed := strings.TrimRight(key, ".")
	if !strings.Contains(trimmed, ".") && !strings.Contains(trimmed, "::") {
		return true
	}
	return strings.HasPrefix(child, " ")
}
