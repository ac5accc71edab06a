package scanner

import (
	"strings"

	"github.com/gobwas/glob"
)

// Filter keeps the keys selected by an "only" list. Entries ending in "*" keep
// every key with that prefix, other entries keep the exact key.
type Filter struct {
	exact    map[string]struct{}
	prefixes []glob.Glob
}

// NewFilter compiles the entries. Blank entries are ignored; a filter with no
// entries keeps everything.
func NewFilter(entries []string) (*Filter, error) {
	f := &Filter{exact: make(map[string]struct{})}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		prefix, ok := strings.CutSuffix(e, "*")
		if !ok {
			f.exact[e] = struct{}{}
			continue
		}
		g, err := glob.Compile(glob.QuoteMeta(prefix) + "*")
		if err != nil {
			return nil, err
		}
		f.prefixes = append(f.prefixes, g)
	}
	return f, nil
}

// Empty reports whether the filter keeps every key.
func (f *Filter) Empty() bool {
	return len(f.exact) == 0 && len(f.prefixes) == 0
}

func (f *Filter) Keep(key string) bool {
	if f.Empty() {
		return true
	}
	if _, ok := f.exact[key]; ok {
		return true
	}
	for _, g := range f.prefixes {
		if g.Match(key) {
			return true
		}
	}
	return false
}

// Apply returns the kept keys in their original order.
func (f *Filter) Apply(keys []string) []string {
	if f.Empty() {
		return keys
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if f.Keep(k) {
			out = append(out, k)
		}
	}
	return out
}
