package search

import (
	"strings"
	"unicode/utf8"
)

// Scoring constants. Rule order in Score is part of the contract.
const (
	exactScore      = 1.0
	containmentBase = 0.8
	containmentSpan = 0.2
	prefixScore     = 0.9
)

// Score returns how well candidate matches query, in [0,1].
//
// Rules, first applicable wins:
//  1. exact match: 1.0
//  2. candidate contains query: 0.8 + 0.2*len(query)/len(candidate)
//  3. candidate starts with query: 0.9
//  4. otherwise: 1 - levenshtein/maxLen, floored at 0
//
// Rule 2 is checked before rule 3, so true prefixes score by the containment
// formula. Lengths are counted in runes; each invalid UTF-8 byte counts as
// one unit that equals only the same byte.
func Score(query, candidate string, caseSensitive bool) float64 {
	q, c := query, candidate
	if !caseSensitive {
		q = fold(q)
		c = fold(c)
	}

	if q == c {
		return exactScore
	}

	qLen := utf8.RuneCountInString(q)
	cLen := utf8.RuneCountInString(c)

	if strings.Contains(c, q) {
		return containmentBase + containmentSpan*float64(qLen)/float64(cLen)
	}

	if strings.HasPrefix(c, q) {
		return prefixScore
	}

	maxLen := max(qLen, cLen)
	sim := 1 - float64(Levenshtein(q, c))/float64(maxLen)
	return max(0, sim)
}

// Levenshtein returns the edit distance between a and b over Unicode code points,
// with unit cost for insertion, deletion and substitution.
func Levenshtein(a, b string) int {
	ra := codePoints(a)
	rb := codePoints(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// fold lowercases s, keeping invalid UTF-8 bytes as they are.
// strings.ToLower would turn every such byte into U+FFFD.
func fold(s string) string {
	if utf8.ValidString(s) {
		return strings.ToLower(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(s[i])
		} else {
			b.WriteString(strings.ToLower(s[i : i+size]))
		}
		i += size
	}
	return b.String()
}

// codePoints decodes s into runes. An invalid byte b becomes -1-b, which no
// valid rune or other byte can equal.
func codePoints(s string) []rune {
	if utf8.ValidString(s) {
		return []rune(s)
	}
	out := make([]rune, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			r = -1 - rune(s[i])
		}
		out = append(out, r)
		i += size
	}
	return out
}
