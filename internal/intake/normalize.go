// Package intake implements the request intake engine: text normalization,
// desired-hour extraction, duplicate detection, category/trade
// classification and technician selection. Every function here is pure and
// deterministic; the only mutable state in the pipeline is the technician
// load ledger, which lives behind the repository layer.
package intake

import "strings"

// correction is a single slang/misspelling rewrite. Replacements are
// substring rewrites applied in table order, matching even inside other
// words; that is intentional and must not be replaced by word-boundary
// matching. Text that already reads as a rule's corrected form is left
// alone, so entries like "workin" cannot chew on the "working" an earlier
// entry produced and normalization stays idempotent.
type correction struct {
	from string
	to   string
}

var corrections = []correction{
	{"wokring", "working"},
	{"workin", "working"},
	{"wrkng", "working"},
	{"not wrking", "not working"},
	{"nt working", "not working"},
	{"plz", "please"},
	{"pls", "please"},
	{"ac", "air conditioner"},
	{"a.c", "air conditioner"},
	{"eletrician", "electrician"},
	{"electrican", "electrician"},
	{"leek", "leak"},
	{"lakage", "leakage"},
	{"watet", "water"},
	{"bathrom", "bathroom"},
	{"hstl", "hostel"},
	{"clg", "college"},
	{"wokr", "work"},
	{"woking", "working"},
	{"urgnt", "urgent"},
}

// Normalize lowercases and trims text, applies the correction table in
// order, then collapses internal whitespace to single spaces. Empty input
// normalizes to the empty string; there are no error conditions.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	for _, c := range corrections {
		s = applyCorrection(s, c.from, c.to)
	}
	return strings.Join(strings.Fields(s), " ")
}

// applyCorrection rewrites every occurrence of from into to, except where
// the text at that position already spells out to.
func applyCorrection(s, from, to string) string {
	if !strings.Contains(s, from) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], to) {
			b.WriteString(to)
			i += len(to)
			continue
		}
		if strings.HasPrefix(s[i:], from) {
			b.WriteString(to)
			i += len(from)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
