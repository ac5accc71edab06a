package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"localefinder/internal/domain"
	"localefinder/internal/domain/keytree"
)

// EncodeJSON renders tree as a pretty-printed JSON object with unescaped
// Unicode and HTML characters.
func (e *Encoder) EncodeJSON(tree *keytree.Branch) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.writeJSONObject(&buf, tree, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (e *Encoder) writeJSONObject(buf *bytes.Buffer, b *keytree.Branch, depth int) error {
	if b.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}
	buf.WriteString("{\n")
	keys := e.sortedKeys(b)
	for i, k := range keys {
		buf.WriteString(strings.Repeat(e.indent, depth+1))
		if err := writeJSONString(buf, k); err != nil {
			return err
		}
		buf.WriteString(": ")
		n, _ := b.Get(k)
		switch v := n.(type) {
		case keytree.Leaf:
			if err := writeJSONString(buf, string(v)); err != nil {
				return err
			}
		case *keytree.Branch:
			if err := e.writeJSONObject(buf, v, depth+1); err != nil {
				return err
			}
		}
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(strings.Repeat(e.indent, depth))
	buf.WriteByte('}')
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode %q: %w", s, err)
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// DecodeJSON parses a JSON catalog, keeping the key order of the file. Nested
// objects become branches, arrays become branches keyed by index and scalars
// other than strings keep their literal text.
func DecodeJSON(data []byte) (*keytree.Branch, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return keytree.New(), nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFormat, err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil, fmt.Errorf("%w: expected a JSON object, got %v", domain.ErrCatalogFormat, tok)
	}

	tree, err := decodeJSONContainer(dec, delim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFormat, err)
	}
	if _, err := dec.Token(); err == nil {
		return nil, fmt.Errorf("%w: trailing data after catalog", domain.ErrCatalogFormat)
	}
	return tree, nil
}

func decodeJSONContainer(dec *json.Decoder, delim json.Delim) (*keytree.Branch, error) {
	out := keytree.New()
	for i := 0; dec.More(); i++ {
		key := strconv.Itoa(i)
		if delim == '{' {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			s, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("expected string key, got %T", tok)
			}
			key = s
		}
		n, err := decodeJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		out.Set(key, n)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeJSONValue(dec *json.Decoder) (keytree.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		return decodeJSONContainer(dec, v)
	case string:
		return keytree.Leaf(v), nil
	case json.Number:
		return keytree.Leaf(v.String()), nil
	case bool:
		return keytree.Leaf(strconv.FormatBool(v)), nil
	case nil:
		return keytree.Leaf(""), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
