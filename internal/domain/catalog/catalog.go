// Package catalog reads and writes persisted translation catalogs.
//
// Default catalogs are JSON objects. Namespaced catalogs are PHP files that
// return a nested array literal. Output is deterministic: keys are sorted with
// a natural, case-insensitive collation at every level before anything is
// emitted.
package catalog

import (
	"localefinder/internal/domain/keytree"
	"localefinder/pkg/natsort"
)

// Format selects the persisted representation.
type Format int

const (
	FormatJSON Format = iota
	FormatPHP
)

// FormatFor returns the format used for a namespace.
func FormatFor(namespace string) Format {
	if namespace == keytree.DefaultNamespace {
		return FormatJSON
	}
	return FormatPHP
}

// Encoder renders trees for one locale.
// An Encoder is not safe for concurrent use.
type Encoder struct {
	sorter *natsort.Sorter
	indent string
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithIndent overrides the JSON indentation (four spaces by default).
func WithIndent(indent string) Option {
	return func(e *Encoder) {
		e.indent = indent
	}
}

// NewEncoder returns an Encoder sorting keys with the collation of locale.
func NewEncoder(locale string, opts ...Option) *Encoder {
	e := &Encoder{sorter: natsort.New(locale), indent: "    "}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode renders tree in the given format.
func (e *Encoder) Encode(tree *keytree.Branch, format Format) ([]byte, error) {
	if format == FormatPHP {
		return e.EncodePHP(tree)
	}
	return e.EncodeJSON(tree)
}

// Decode parses data in the given format. Empty input yields an empty tree.
func Decode(data []byte, format Format) (*keytree.Branch, error) {
	if format == FormatPHP {
		return DecodePHP(data)
	}
	return DecodeJSON(data)
}

func (e *Encoder) sortedKeys(b *keytree.Branch) []string {
	keys := b.Keys()
	e.sorter.Strings(keys)
	return keys
}
