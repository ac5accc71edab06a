// Package natsort orders translation keys the way a reader expects: numbers
// compare by value, case is ignored and the locale's collation rules apply.
package natsort

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sorter orders strings with a numeric, case-insensitive collation for one locale.
// A Sorter is not safe for concurrent use.
type Sorter struct {
	col *collate.Collator
}

// New returns a Sorter for the given locale. Unknown or empty locales fall back
// to the root collation.
func New(locale string) *Sorter {
	tag := language.Und
	if locale != "" {
		if t, err := language.Parse(locale); err == nil {
			tag = t
		}
	}
	return &Sorter{col: collate.New(tag, collate.Numeric, collate.IgnoreCase)}
}

// Compare returns -1, 0 or 1. Strings the collation considers equal are
// ordered bytewise so the result is total.
func (s *Sorter) Compare(a, b string) int {
	if c := s.col.CompareString(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Strings sorts keys in place.
func (s *Sorter) Strings(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		return s.Compare(keys[i], keys[j]) < 0
	})
}

// Strings sorts keys in place using the root collation.
func Strings(keys []string) {
	New("").Strings(keys)
}
