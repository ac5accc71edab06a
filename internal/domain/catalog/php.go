package catalog

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"localefinder/internal/domain"
	"localefinder/internal/domain/keytree"
)

const phpIndent = "  "

var phpIntKey = regexp.MustCompile(`^(0|-?[1-9][0-9]*)$`)

// EncodePHP renders tree as a PHP file returning a short-syntax array literal.
func (e *Encoder) EncodePHP(tree *keytree.Branch) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("<?php\n\nreturn ")
	e.writePHPArray(&buf, tree, 0)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

func (e *Encoder) writePHPArray(buf *bytes.Buffer, b *keytree.Branch, depth int) {
	if b.Len() == 0 {
		buf.WriteString("[]")
		return
	}
	buf.WriteString("[\n")
	for _, k := range e.sortedKeys(b) {
		buf.WriteString(strings.Repeat(phpIndent, depth+1))
		buf.WriteString(phpKey(k))
		buf.WriteString(" => ")
		n, _ := b.Get(k)
		switch v := n.(type) {
		case keytree.Leaf:
			buf.WriteString(phpQuote(string(v)))
		case *keytree.Branch:
			e.writePHPArray(buf, v, depth+1)
		}
		buf.WriteString(",\n")
	}
	buf.WriteString(strings.Repeat(phpIndent, depth))
	buf.WriteByte(']')
}

func phpKey(k string) string {
	if phpIntKey.MatchString(k) {
		if _, err := strconv.ParseInt(k, 10, 64); err == nil {
			return k
		}
	}
	return phpQuote(k)
}

func phpQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}

// DecodePHP parses a PHP catalog file. Only literal arrays are understood:
// string, number, boolean and null scalars in short or array() syntax, with
// or without keys. Anything else is reported as a format error.
func DecodePHP(data []byte) (*keytree.Branch, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return keytree.New(), nil
	}
	p := &phpParser{src: data}
	tree, err := p.file()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFormat, err)
	}
	return tree, nil
}

type phpParser struct {
	src []byte
	pos int
}

func (p *phpParser) file() (*keytree.Branch, error) {
	p.skip()
	if !p.consumeWord("<?php") {
		return nil, p.errorf("missing <?php open tag")
	}
	p.skip()
	if p.consumeWord("declare") {
		if err := p.skipStatement(); err != nil {
			return nil, err
		}
		p.skip()
	}
	if !p.consumeWord("return") {
		return nil, p.errorf("expected return statement")
	}
	p.skip()
	tree, err := p.array()
	if err != nil {
		return nil, err
	}
	p.skip()
	p.consume(';')
	p.skip()
	if p.consumeWord("?>") {
		p.skip()
	}
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected trailing content")
	}
	return tree, nil
}

func (p *phpParser) array() (*keytree.Branch, error) {
	closing := byte(']')
	if !p.consume('[') {
		if !strings.EqualFold(p.ident(), "array") {
			return nil, p.errorf("expected array literal")
		}
		p.skip()
		if !p.consume('(') {
			return nil, p.errorf("expected ( after array")
		}
		closing = ')'
	}

	out := keytree.New()
	next := 0
	for {
		p.skip()
		if p.consume(closing) {
			return out, nil
		}
		first, err := p.value()
		if err != nil {
			return nil, err
		}
		p.skip()

		var key string
		var val keytree.Node
		if p.consumeWord("=>") {
			leaf, ok := first.(keytree.Leaf)
			if !ok {
				return nil, p.errorf("array used as key")
			}
			key = string(leaf)
			p.skip()
			if val, err = p.value(); err != nil {
				return nil, err
			}
			if n, err := strconv.Atoi(key); err == nil && n >= next {
				next = n + 1
			}
		} else {
			key = strconv.Itoa(next)
			next++
			val = first
		}
		out.Set(key, val)

		p.skip()
		if p.consume(',') {
			continue
		}
		p.skip()
		if p.consume(closing) {
			return out, nil
		}
		return nil, p.errorf("expected , or %c", closing)
	}
}

func (p *phpParser) value() (keytree.Node, error) {
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of file")
	}
	switch c := p.src[p.pos]; {
	case c == '[':
		return p.array()
	case c == '\'':
		s, err := p.singleQuoted()
		return keytree.Leaf(s), err
	case c == '"':
		s, err := p.doubleQuoted()
		return keytree.Leaf(s), err
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return keytree.Leaf(p.number()), nil
	}
	word := p.ident()
	switch strings.ToLower(word) {
	case "array":
		p.pos -= len(word)
		return p.array()
	case "true", "false":
		return keytree.Leaf(strings.ToLower(word)), nil
	case "null":
		return keytree.Leaf(""), nil
	case "":
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	return nil, p.errorf("unsupported expression %q", word)
}

func (p *phpParser) singleQuoted() (string, error) {
	start := p.pos
	p.pos++
	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\'':
			p.pos++
			return sb.String(), nil
		case c == '\\' && p.pos+1 < len(p.src) && (p.src[p.pos+1] == '\'' || p.src[p.pos+1] == '\\'):
			sb.WriteByte(p.src[p.pos+1])
			p.pos += 2
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	p.pos = start
	return "", p.errorf("unterminated string")
}

func (p *phpParser) doubleQuoted() (string, error) {
	start := p.pos
	p.pos++
	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '"' {
			p.pos++
			return sb.String(), nil
		}
		if c == '$' && p.pos+1 < len(p.src) && (isIdentByte(p.src[p.pos+1]) || p.src[p.pos+1] == '{') {
			return "", p.errorf("interpolated strings are not supported")
		}
		if c != '\\' || p.pos+1 >= len(p.src) {
			sb.WriteByte(c)
			p.pos++
			continue
		}
		esc := p.src[p.pos+1]
		p.pos += 2
		switch esc {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'v':
			sb.WriteByte('\v')
		case 'f':
			sb.WriteByte('\f')
		case 'e':
			sb.WriteByte(0x1b)
		case '0':
			sb.WriteByte(0)
		case '\\', '"', '$':
			sb.WriteByte(esc)
		default:
			sb.WriteByte('\\')
			sb.WriteByte(esc)
		}
	}
	p.pos = start
	return "", p.errorf("unterminated string")
}

func (p *phpParser) number() string {
	start := p.pos
	p.pos++
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == '_' || c == 'e' || c == 'E' || c == 'x' || c == 'X' ||
			(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
			p.pos++
			continue
		}
		break
	}
	return string(p.src[start:p.pos])
}

func (p *phpParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 0x80 || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// skip moves past whitespace and comments.
func (p *phpParser) skip() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case c == '#' || (c == '/' && p.peek(1) == '/'):
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
		case c == '/' && p.peek(1) == '*':
			end := bytes.Index(p.src[p.pos+2:], []byte("*/"))
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 4
		default:
			return
		}
	}
}

func (p *phpParser) skipStatement() error {
	end := bytes.IndexByte(p.src[p.pos:], ';')
	if end < 0 {
		return p.errorf("unterminated statement")
	}
	p.pos += end + 1
	return nil
}

func (p *phpParser) peek(off int) byte {
	if p.pos+off < len(p.src) {
		return p.src[p.pos+off]
	}
	return 0
}

func (p *phpParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *phpParser) consumeWord(w string) bool {
	if !bytes.HasPrefix(p.src[p.pos:], []byte(w)) {
		return false
	}
	if isIdentByte(w[len(w)-1]) {
		if end := p.pos + len(w); end < len(p.src) && isIdentByte(p.src[end]) {
			return false
		}
	}
	p.pos += len(w)
	return true
}

func (p *phpParser) errorf(format string, args ...any) error {
	line := 1 + bytes.Count(p.src[:p.pos], []byte("\n"))
	return fmt.Errorf("line %d: %s", line, fmt.Sprintf(format, args...))
}
