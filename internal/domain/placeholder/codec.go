// Package placeholder hides inline variables such as ":name" from a text
// translation service and restores them afterwards.
//
// A variable is a colon followed by a run of non-space characters. Each one is
// replaced by a marker "{{id}}" where id is the base64url encoding of the
// original text, so the substitution is stateless and reversible. Template
// markers already present in the input are protected the same way.
package placeholder

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"localefinder/internal/domain"
)

const (
	markerOpen  = "{{"
	markerClose = "}}"
)

var encoding = base64.RawURLEncoding

// Table maps marker ids to the text they stand for. It is produced by Mask
// and must be handed to Unmask for the same string.
type Table map[string]string

// Mask replaces every variable in s with an opaque marker.
func Mask(s string) (string, Table) {
	table := make(Table)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], markerOpen) {
			if end := strings.Index(s[i+len(markerOpen):], markerClose); end >= 0 {
				span := s[i : i+len(markerOpen)+end+len(markerClose)]
				b.WriteString(table.add(span))
				i += len(span)
				continue
			}
		}
		if s[i] == ':' {
			if n := tokenLen(s[i+1:]); n > 0 {
				b.WriteString(table.add(s[i : i+1+n]))
				i += 1 + n
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String(), table
}

// Unmask restores the text hidden by Mask. Whitespace a translator may have
// inserted inside a marker is tolerated. A marker whose id is not in table,
// or a table entry that no longer appears in s, yields ErrUnknownPlaceholder.
func Unmask(s string, table Table) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	restored := make(map[string]bool, len(table))

	for {
		end := strings.Index(s, markerClose)
		if end < 0 {
			b.WriteString(s)
			break
		}
		start := strings.LastIndex(s[:end], markerOpen)
		if start < 0 {
			b.WriteString(s[:end+len(markerClose)])
			s = s[end+len(markerClose):]
			continue
		}
		id := strings.TrimSpace(s[start+len(markerOpen) : end])
		orig, ok := table[id]
		if !ok {
			return "", fmt.Errorf("%w: %q", domain.ErrUnknownPlaceholder, markerOpen+id+markerClose)
		}
		b.WriteString(s[:start])
		b.WriteString(orig)
		restored[id] = true
		s = s[end+len(markerClose):]
	}

	for id, orig := range table {
		if !restored[id] {
			return "", fmt.Errorf("%w: %q was lost", domain.ErrUnknownPlaceholder, orig)
		}
	}
	return b.String(), nil
}

func (t Table) add(text string) string {
	id := encoding.EncodeToString([]byte(text))
	t[id] = text
	return markerOpen + id + markerClose
}

// tokenLen returns the byte length of the leading run of non-space runes.
func tokenLen(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if unicode.IsSpace(r) {
			break
		}
		n += size
	}
	return n
}
