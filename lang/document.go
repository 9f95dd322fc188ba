package lang

import (
	"strings"

	"github.com/BurntSushi/toml"
)

// Entry is one top-level name/value pair of a document.
type Entry struct {
	Name  string
	Value Value
}

// Document holds the decoded top-level entries of a TOML source, in
// document order.
type Document struct {
	Entries []Entry
}

// DecodeDocument parses text as TOML and classifies each top-level
// entry into the closed [Value] variant. Entry order follows the
// source document, recovered from the decoder metadata. Comment
// blocks must already be stripped (see [Extract]).
func DecodeDocument(text string) (*Document, error) {
	var raw map[string]any

	meta, err := toml.Decode(text, &raw)
	if err != nil {
		return nil, ErrSyntax.Wrap(&SyntaxError{Err: err, Source: text})
	}

	doc := &Document{}

	for _, name := range topKeys(meta) {
		doc.Entries = append(doc.Entries, Entry{
			Name:  name,
			Value: classify(raw[name], meta, name),
		})
	}

	return doc, nil
}

// topKeys returns the distinct top-level key names in order of first
// appearance. Defining [a.b] before [a] still places a at the [a.b]
// position, matching where the table began in the source.
func topKeys(meta toml.MetaData) []string {
	var (
		names []string
		seen  = map[string]bool{}
	)

	for _, key := range meta.Keys() {
		if name := key[0]; !seen[name] {
			seen[name] = true

			names = append(names, name)
		}
	}

	return names
}

// childKeys returns the distinct direct members of the top-level table
// parent in order of first appearance.
func childKeys(meta toml.MetaData, parent string) []string {
	var (
		names []string
		seen  = map[string]bool{}
	)

	for _, key := range meta.Keys() {
		if len(key) < 2 || key[0] != parent {
			continue
		}

		if name := key[1]; !seen[name] {
			seen[name] = true

			names = append(names, name)
		}
	}

	return names
}

// classify maps one decoded TOML value onto the closed Value variant.
// Values outside the set (bool, datetime, plain string, ...) become
// KindInvalid and only fail if they are processed, so error precedence
// follows document order.
func classify(raw any, meta toml.MetaData, name string) Value {
	switch v := raw.(type) {
	case int64:
		return Value{Kind: KindNumber, Number: IntNumber(v)}

	case float64:
		return Value{Kind: KindNumber, Number: FloatNumber(v)}

	case string:
		if src, ok := exprSource(v); ok {
			return Value{Kind: KindExpr, Expr: src, Raw: v}
		}

		return Value{Kind: KindInvalid, Raw: v}

	case []any:
		return Value{Kind: KindList, List: v}

	case []map[string]any:
		// Arrays of tables ([[name]]) decode as a typed slice.
		list := make([]any, len(v))
		for i, m := range v {
			list[i] = m
		}

		return Value{Kind: KindList, List: list}

	case map[string]any:
		members := childKeys(meta, name)

		table := make([]Pair, 0, len(members))
		for _, key := range members {
			table = append(table, Pair{Key: key, Value: v[key]})
		}

		return Value{Kind: KindTable, Table: table}

	default:
		return Value{Kind: KindInvalid, Raw: raw}
	}
}

// exprSource reports whether s is an expression string: its trimmed
// form starts and ends with [ExprDelim]. The returned source is the
// trimmed interior between the two delimiters.
func exprSource(s string) (string, bool) {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, ExprDelim) || !strings.HasSuffix(t, ExprDelim) {
		return "", false
	}

	if len(t) < 2 {
		// A lone delimiter opens and closes the same expression: an
		// empty token stream.
		return "", true
	}

	return strings.TrimSpace(t[1 : len(t)-1]), true
}
