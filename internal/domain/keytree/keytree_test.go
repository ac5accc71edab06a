package keytree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localefinder/internal/domain/keytree"
)

// tree builds a Branch from nested literals: strings become leaves and
// map[string]any values become branches. Keys are inserted in sorted order.
func tree(t *testing.T, m map[string]any) *keytree.Branch {
	t.Helper()
	b := keytree.New()
	for _, k := range sortedKeys(m) {
		switch v := m[k].(type) {
		case string:
			b.Set(k, keytree.Leaf(v))
		case map[string]any:
			b.Set(k, tree(t, v))
		default:
			t.Fatalf("unsupported literal %T", v)
		}
	}
	return b
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

func TestBranchBasics(t *testing.T) {
	t.Parallel()

	b := keytree.New()
	b.Set("b", keytree.Leaf("1"))
	b.Set("a", keytree.Leaf("2"))
	b.Set("b", keytree.Leaf("3"))

	assert.Equal(t, []string{"b", "a"}, b.Keys())
	n, ok := b.Get("b")
	require.True(t, ok)
	assert.Equal(t, keytree.Leaf("3"), n)

	b.Delete("b")
	b.Delete("missing")
	assert.Equal(t, []string{"a"}, b.Keys())
	assert.Equal(t, 1, b.Len())
}

func TestSetPathAndWalk(t *testing.T) {
	t.Parallel()

	b := keytree.New()
	b.SetPath([]string{"profile", "title"}, keytree.Leaf("Title"))
	b.SetPath([]string{"profile", "subtitle"}, keytree.Leaf("Sub"))
	b.SetPath([]string{"flat"}, keytree.Leaf("x"))
	b.SetPath(nil, keytree.Leaf("ignored"))

	var seen []string
	b.Walk(func(path []string, leaf keytree.Leaf) {
		seen = append(seen, joinPath(path)+"="+string(leaf))
	})
	assert.Equal(t, []string{"profile.title=Title", "profile.subtitle=Sub", "flat=x"}, seen)
	assert.Equal(t, 3, b.CountLeaves())
}

func joinPath(p []string) string {
	out := ""
	for i, s := range p {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	orig := tree(t, map[string]any{"a": map[string]any{"b": "1"}})
	cp := orig.Clone()
	cp.SetPath([]string{"a", "c"}, keytree.Leaf("2"))

	assert.Equal(t, map[string]any{"a": map[string]any{"b": "1"}}, orig.ToMap())
	assert.Equal(t, map[string]any{"a": map[string]any{"b": "1", "c": "2"}}, cp.ToMap())
}

func TestDiff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		left  map[string]any
		right map[string]any
		want  map[string]any
	}{
		{
			name:  "identical trees",
			left:  map[string]any{"a": "1", "b": map[string]any{"c": "2"}},
			right: map[string]any{"a": "1", "b": map[string]any{"c": "2"}},
			want:  map[string]any{},
		},
		{
			name:  "missing leaf is included",
			left:  map[string]any{"hello": "Hello", "bye": ""},
			right: map[string]any{"hello": ""},
			want:  map[string]any{"bye": ""},
		},
		{
			name:  "missing subtree is copied whole",
			left:  map[string]any{"a": map[string]any{"b": "1", "c": "2"}},
			right: map[string]any{},
			want:  map[string]any{"a": map[string]any{"b": "1", "c": "2"}},
		},
		{
			name:  "nested difference keeps only the non-empty part",
			left:  map[string]any{"a": map[string]any{"b": "1", "c": "2"}, "d": map[string]any{"e": "3"}},
			right: map[string]any{"a": map[string]any{"b": "x"}, "d": map[string]any{"e": "y"}},
			want:  map[string]any{"a": map[string]any{"c": "2"}},
		},
		{
			name:  "leaf versus branch is not a difference",
			left:  map[string]any{"a": "1"},
			right: map[string]any{"a": map[string]any{"b": ""}},
			want:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := keytree.Diff(tree(t, tt.left), tree(t, tt.right))
			assert.Equal(t, tt.want, got.ToMap())
		})
	}
}

func TestPrune(t *testing.T) {
	t.Parallel()

	current := tree(t, map[string]any{
		"old":  "value",
		"keep": "kept",
		"user": map[string]any{"profile": map[string]any{"title": "T"}, "name": "N"},
	})
	discovered := tree(t, map[string]any{
		"keep": "",
		"user": map[string]any{"name": ""},
	})

	removed := keytree.Diff(current, discovered)
	assert.Equal(t, map[string]any{
		"old":  "value",
		"user": map[string]any{"profile": map[string]any{"title": "T"}},
	}, removed.ToMap())

	pruned := keytree.Prune(current, removed)
	assert.Equal(t, map[string]any{
		"keep": "kept",
		"user": map[string]any{"name": "N"},
	}, pruned.ToMap())

	// The input tree is untouched.
	assert.Equal(t, 3, current.Len())
}

func TestPruneDropsEmptiedParents(t *testing.T) {
	t.Parallel()

	current := tree(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": "1"}}, "z": "2"})
	removed := tree(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": "1"}}})

	pruned := keytree.Prune(current, removed)
	assert.Equal(t, map[string]any{"z": "2"}, pruned.ToMap())
}

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("existing values are preserved", func(t *testing.T) {
		t.Parallel()
		base := tree(t, map[string]any{"hello": "Hello"})
		extra := tree(t, map[string]any{"hello": "hello", "bye": "bye"})
		got := keytree.Merge(base, extra)
		assert.Equal(t, map[string]any{"hello": "Hello", "bye": "bye"}, got.ToMap())
	})

	t.Run("branch wins over leaf", func(t *testing.T) {
		t.Parallel()
		leafFirst := keytree.Merge(
			tree(t, map[string]any{"a": "1"}),
			tree(t, map[string]any{"a": map[string]any{"b": "2"}}),
		)
		branchFirst := keytree.Merge(
			tree(t, map[string]any{"a": map[string]any{"b": "2"}}),
			tree(t, map[string]any{"a": "1"}),
		)
		want := map[string]any{"a": map[string]any{"b": "2"}}
		assert.Equal(t, want, leafFirst.ToMap())
		assert.Equal(t, want, branchFirst.ToMap())
	})

	t.Run("disjoint union round-trips through diff", func(t *testing.T) {
		t.Parallel()
		a := tree(t, map[string]any{"x": "1", "n": map[string]any{"p": "2"}})
		b := tree(t, map[string]any{"y": "3", "m": map[string]any{"q": "4"}})
		merged := keytree.Merge(a, b)
		assert.Equal(t, 4, merged.CountLeaves())
		assert.Equal(t, b.ToMap(), keytree.Diff(merged, a).ToMap())
		assert.Equal(t, a.ToMap(), keytree.Diff(merged, b).ToMap())
		assert.Zero(t, keytree.Diff(merged, merged).Len())
	})
}

func TestBuild(t *testing.T) {
	t.Parallel()

	exists := keytree.NamespaceCheckerFunc(func(ns string) bool {
		return ns == "user" || ns == "blog::posts"
	})

	t.Run("namespaced keys become nested trees", func(t *testing.T) {
		t.Parallel()
		p := keytree.Build([]string{"user.profile.title", "user.profile.subtitle"}, exists)
		require.Contains(t, p.Namespaces, "user")
		assert.Equal(t, map[string]any{
			"profile": map[string]any{"title": "", "subtitle": ""},
		}, p.Namespaces["user"].ToMap())
		assert.Zero(t, p.Default.Len())
		assert.Equal(t, []string{"user"}, p.Order)
	})

	t.Run("flat keys", func(t *testing.T) {
		t.Parallel()
		p := keytree.Build([]string{"Hello", "foo.", "user. with space", "Are you sure?"}, exists)
		assert.Equal(t, []string{"Hello", "foo.", "user. with space", "Are you sure?"}, p.Default.Keys())
		assert.Empty(t, p.Namespaces)
		assert.Empty(t, p.Demoted)
	})

	t.Run("missing namespace is demoted", func(t *testing.T) {
		t.Parallel()
		p := keytree.Build([]string{"shop.cart.empty"}, exists)
		assert.Equal(t, []string{"shop.cart.empty"}, p.Default.Keys())
		assert.Equal(t, []keytree.Demotion{{Key: "shop.cart.empty", Namespace: "shop"}}, p.Demoted)
	})

	t.Run("leading space stops splitting deeper", func(t *testing.T) {
		t.Parallel()
		p := keytree.Build([]string{"user.greeting. Welcome back"}, exists)
		assert.Equal(t, map[string]any{"greeting. Welcome back": ""}, p.Namespaces["user"].ToMap())
	})

	t.Run("trailing dot keeps last segment intact", func(t *testing.T) {
		t.Parallel()
		p := keytree.Build([]string{"user.name."}, exists)
		assert.Equal(t, map[string]any{"name.": ""}, p.Namespaces["user"].ToMap())
	})

	t.Run("deeper key wins over leaf regardless of order", func(t *testing.T) {
		t.Parallel()
		want := map[string]any{"name": map[string]any{"first": ""}}
		p1 := keytree.Build([]string{"user.name", "user.name.first"}, exists)
		p2 := keytree.Build([]string{"user.name.first", "user.name"}, exists)
		assert.Equal(t, want, p1.Namespaces["user"].ToMap())
		assert.Equal(t, want, p2.Namespaces["user"].ToMap())
	})

	t.Run("module keys", func(t *testing.T) {
		t.Parallel()
		p := keytree.Build([]string{"blog::posts.title"}, exists)
		assert.Equal(t, map[string]any{"title": ""}, p.Namespaces["blog::posts"].ToMap())
	})

	t.Run("empty namespace stays flat", func(t *testing.T) {
		t.Parallel()
		p := keytree.Build([]string{".hidden.key"}, exists)
		assert.Equal(t, []string{".hidden.key"}, p.Default.Keys())
	})

	t.Run("checker is asked once per namespace", func(t *testing.T) {
		t.Parallel()
		calls := 0
		counting := keytree.NamespaceCheckerFunc(func(string) bool {
			calls++
			return false
		})
		p := keytree.Build([]string{"a.b", "a.c", "a.d"}, counting)
		assert.Equal(t, 1, calls)
		assert.Len(t, p.Demoted, 3)
	})
}
