package agencia

import (
	"encoding/json"
	"regexp"
	"strings"
)

// frontmatterRegion matches the first header block: a pair of ---
// marker lines with the field lines between them.
var frontmatterRegion = regexp.MustCompile(`(?s)---\s*(.*?)\s*---`)

// Value is a frontmatter field value: either a scalar string or a list
// of strings. The zero Value is an empty scalar.
type Value struct {
	str    string
	list   []string
	isList bool
}

// StringValue returns a scalar Value.
func StringValue(s string) Value {
	return Value{str: s}
}

// ListValue returns a list Value.
func ListValue(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{list: items, isList: true}
}

// IsList reports whether the value is a list.
func (v Value) IsList() bool { return v.isList }

// Scalar returns the scalar value, or "" for a list.
func (v Value) Scalar() string { return v.str }

// List returns the list value, or nil for a scalar.
func (v Value) List() []string { return v.list }

// Field is one key/value pair of a frontmatter header. Fields are kept
// in a slice so that rendering order is deterministic.
type Field struct {
	Key   string
	Value Value
}

// ParseFrontmatter extracts the header block from a document and parses
// its lines as "key: value" pairs. The parse is tolerant by design: a
// document without a header block yields an empty map, surrounding
// quotes are stripped from scalars, and a bracket-delimited value that
// fails to decode as a JSON string array is kept as its raw string.
func ParseFrontmatter(doc string) map[string]Value {
	fields := make(map[string]Value)
	m := frontmatterRegion.FindStringSubmatch(doc)
	if m == nil {
		return fields
	}
	for _, line := range strings.Split(m[1], "\n") {
		key, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		value := stripQuotes(strings.TrimSpace(rest))
		if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
			var list []string
			if err := json.Unmarshal([]byte(value), &list); err == nil {
				fields[key] = ListValue(list...)
				continue
			}
			// malformed list syntax: fall through and keep the raw string
		}
		fields[key] = StringValue(value)
	}
	return fields
}

// StripFrontmatter returns the document with the header block removed
// and surrounding whitespace trimmed. A document without a header block
// is returned unchanged.
func StripFrontmatter(doc string) string {
	loc := frontmatterRegion.FindStringIndex(doc)
	if loc == nil {
		return doc
	}
	return strings.TrimSpace(doc[:loc[0]] + doc[loc[1]:])
}

// RenderFrontmatter is the inverse of ParseFrontmatter for documents
// this system writes: scalars are written raw between double quotes so
// the lenient quote strip recovers them exactly, lists are
// JSON-encoded, and the body follows the closing marker after a blank
// line. Field values are single-line.
func RenderFrontmatter(fields []Field, body string) string {
	var b strings.Builder
	b.WriteString("---\n")
	for _, f := range fields {
		b.WriteString(f.Key)
		b.WriteString(": ")
		if f.Value.IsList() {
			data, _ := json.Marshal(f.Value.List())
			b.Write(data)
		} else {
			b.WriteByte('"')
			b.WriteString(f.Value.Scalar())
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}
	b.WriteString("---\n\n")
	b.WriteString(body)
	b.WriteByte('\n')
	return b.String()
}

// stripQuotes removes one surrounding quote character from each end of
// s. Mismatched quote types are accepted, matching the lenient parse.
func stripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' || first == '\'') && (last == '"' || last == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
