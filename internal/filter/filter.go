// Package filter narrows in-memory collections by text or tag predicates.
//
// All filters are stable: matching items keep their input order. A nil
// Matcher (produced by an empty query) selects the whole collection.
package filter

import (
	"strings"
	"unicode"
)

// Matcher reports whether a field value satisfies a query.
type Matcher func(value string) bool

// Slice returns the items for which pred holds, in input order.
// A nil pred returns items unchanged.
func Slice[T any](items []T, pred func(T) bool) []T {
	if pred == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// By applies m to the field selected from every item.
func By[T any](items []T, field func(T) string, m Matcher) []T {
	if m == nil {
		return items
	}
	return Slice(items, func(it T) bool { return m(field(it)) })
}

// Normalize lower-cases s, drops punctuation and collapses runs of
// whitespace into single spaces.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Text matches values containing query after both are normalised.
// It returns nil when the query is empty after normalisation.
func Text(query string) Matcher {
	q := Normalize(query)
	if q == "" {
		return nil
	}
	return func(value string) bool {
		return strings.Contains(Normalize(value), q)
	}
}

// SplitList splits a delimited multi-value field. Commas, semicolons and
// pipes are all accepted as separators; blank entries are dropped.
func SplitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Tags matches delimited values that carry at least one of tags.
// Comparison is case-insensitive. It returns nil when no tag is given.
func Tags(tags ...string) Matcher {
	want := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if n := Normalize(t); n != "" {
			want[n] = struct{}{}
		}
	}
	if len(want) == 0 {
		return nil
	}
	return func(value string) bool {
		for _, v := range SplitList(value) {
			if _, ok := want[Normalize(v)]; ok {
				return true
			}
		}
		return false
	}
}
