package prices

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Book maps derived keys to price tokens, remembering insertion order.
// Setting an existing key replaces its value in place.
type Book struct {
	entries *orderedmap.OrderedMap[string, string]
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{entries: orderedmap.New[string, string]()}
}

// Set inserts or overwrites key.
func (b *Book) Set(key, price string) {
	b.entries.Set(key, price)
}

// Get returns the price stored under key.
func (b *Book) Get(key string) (string, bool) {
	return b.entries.Get(key)
}

// Len returns the number of entries.
func (b *Book) Len() int {
	return b.entries.Len()
}

// Keys returns all keys in insertion order.
func (b *Book) Keys() []string {
	keys := make([]string, 0, b.entries.Len())
	for pair := b.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every entry in insertion order until fn returns false.
func (b *Book) Each(fn func(key, price string) bool) {
	for pair := b.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// MarshalJSON encodes the book as a compact JSON object in insertion order.
func (b *Book) MarshalJSON() ([]byte, error) {
	return b.encode("")
}

// MarshalIndent encodes the book as a JSON object with each entry on its own
// line, indented by indent. Non-ASCII characters are written as \uXXXX
// escapes and HTML characters are left alone, so the output is plain ASCII.
func (b *Book) MarshalIndent(indent string) ([]byte, error) {
	return b.encode(indent)
}

// UnmarshalJSON decodes a JSON object of string values, keeping file order.
func (b *Book) UnmarshalJSON(data []byte) error {
	m := orderedmap.New[string, string]()
	if err := json.Unmarshal(data, m); err != nil {
		return err
	}
	b.entries = m
	return nil
}

func (b *Book) encode(indent string) ([]byte, error) {
	if b.entries.Len() == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for pair := b.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if indent != "" {
			buf.WriteByte('\n')
			buf.WriteString(indent)
		}
		if err := writeString(&buf, pair.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if indent != "" {
			buf.WriteByte(' ')
		}
		if err := writeString(&buf, pair.Value); err != nil {
			return nil, err
		}
	}
	if indent != "" {
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeString appends s as a JSON string with non-ASCII runes escaped.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("prices: encode %q: %w", s, err)
	}
	quoted := bytes.TrimSuffix(tmp.Bytes(), []byte("\n"))

	for len(quoted) > 0 {
		r, size := utf8.DecodeRune(quoted)
		switch {
		case r == 0x7f:
			buf.WriteString(`\u007f`)
		case r < utf8.RuneSelf:
			buf.WriteByte(quoted[0])
		case r > 0xFFFF:
			r -= 0x10000
			fmt.Fprintf(buf, `\u%04x\u%04x`, 0xD800+(r>>10), 0xDC00+(r&0x3FF))
		default:
			fmt.Fprintf(buf, `\u%04x`, r)
		}
		quoted = quoted[size:]
	}
	return nil
}
