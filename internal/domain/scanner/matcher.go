// Package scanner finds translation keys in raw source text.
//
// It does not parse any programming language. A call such as __('key') is
// recognised in two passes: the first rewrites every call opening and every
// quote that closes an argument into private-use marker runes, the second
// reads the text between an opening marker and the nearest matching closing
// marker. Quotes escaped with a backslash are part of the key. Deeply nested
// quoting is a known limitation.
package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"localefinder/pkg/natsort"
)

const (
	startMarker = '\uE000'
	endMarker   = '\uE001'

	minKeyLength = 2
)

// Matcher extracts keys passed as the first literal argument to one of a set
// of translation functions.
type Matcher struct {
	functions []string
}

// NewMatcher returns a Matcher for the given function names (e.g. "__",
// "trans", "@lang"). Empty names are ignored.
func NewMatcher(functions []string) *Matcher {
	fns := make([]string, 0, len(functions))
	for _, f := range functions {
		if f = strings.TrimSpace(f); f != "" {
			fns = append(fns, f)
		}
	}
	return &Matcher{functions: fns}
}

// Match returns the unique keys found in content in natural order.
func (m *Matcher) Match(content string) []string {
	set := make(map[string]struct{})
	m.collect(content, set)
	return sorted(set)
}

// MatchAll scans several contents and merges the results.
func (m *Matcher) MatchAll(contents []string) []string {
	set := make(map[string]struct{})
	for _, c := range contents {
		m.collect(c, set)
	}
	return sorted(set)
}

func (m *Matcher) collect(content string, set map[string]struct{}) {
	for _, key := range extract(m.mark(content)) {
		if utf8.RuneCountInString(key) < minKeyLength {
			continue
		}
		set[key] = struct{}{}
	}
}

// mark is the first pass. A call opening "<name>(<quote>" becomes
// startMarker+quote and a closing "<quote>)" or "<quote>," becomes
// endMarker+quote followed by the original delimiter.
func (m *Matcher) mark(content string) string {
	content = strings.Map(func(r rune) rune {
		if r == startMarker || r == endMarker {
			return -1
		}
		return r
	}, content)

	var b strings.Builder
	b.Grow(len(content))
	for i := 0; i < len(content); {
		if n := m.callAt(content, i); n > 0 {
			b.WriteRune(startMarker)
			b.WriteByte(content[i+n-1])
			i += n
			continue
		}
		c := content[i]
		if isQuote(c) && i+1 < len(content) && (content[i+1] == ')' || content[i+1] == ',') && !escaped(content, i) {
			b.WriteRune(endMarker)
			b.WriteByte(c)
			i++
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// callAt returns the length of "<name>(<quote>" starting at i, or 0.
func (m *Matcher) callAt(content string, i int) int {
	if i > 0 && !validBoundary(content[:i]) {
		return 0
	}
	for _, fn := range m.functions {
		end := i + len(fn)
		if end+1 >= len(content) {
			continue
		}
		if !strings.EqualFold(content[i:end], fn) {
			continue
		}
		if content[end] == '(' && isQuote(content[end+1]) {
			return len(fn) + 2
		}
	}
	return 0
}

// validBoundary reports whether a call may start right after prefix. Word
// characters and "->" member access make it part of something else.
func validBoundary(prefix string) bool {
	if strings.HasSuffix(prefix, "->") {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(prefix)
	return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// extract is the second pass over marked text.
func extract(marked string) []string {
	var keys []string
	rest := marked
	for {
		i := strings.IndexRune(rest, startMarker)
		if i < 0 {
			return keys
		}
		rest = rest[i+utf8.RuneLen(startMarker):]
		if rest == "" {
			return keys
		}
		quote := rest[0]
		body := rest[1:]

		key, ok := readUntilEnd(body, quote)
		if ok {
			keys = append(keys, key)
		}
	}
}

// readUntilEnd reads body up to the first end marker carrying quote. Another
// call opening before it means this call was never closed.
func readUntilEnd(body string, quote byte) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(body); {
		r, size := utf8.DecodeRuneInString(body[i:])
		switch {
		case r == startMarker:
			return "", false
		case r == endMarker:
			q := body[i+size]
			if q == quote {
				return b.String(), true
			}
			b.WriteByte(q)
			i += size + 1
			continue
		case r == '\\' && i+1 < len(body) && body[i+1] == quote:
			b.WriteByte(quote)
			i += 2
			continue
		}
		b.WriteString(body[i : i+size])
		i += size
	}
	return "", false
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"'
}

// escaped reports whether the byte at i is preceded by an odd number of backslashes.
func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func sorted(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	natsort.Strings(keys)
	return keys
}
