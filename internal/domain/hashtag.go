package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HashtagPrefix is the leading character of every hashtag.
const HashtagPrefix = "#"

// CanonicalHashtag returns the canonical form of a single-token hashtag: it is
// prefixed with '#' and lowercased.
//
// Lowercasing uses Unicode default case mapping with an undetermined language
// tag, so the result does not depend on the host locale. Model output is
// frequently non-English, and language-specific rules (Turkish dotted I, for
// example) are deliberately not applied.
func CanonicalHashtag(tag string) string {
	if !strings.HasPrefix(tag, HashtagPrefix) {
		tag = HashtagPrefix + tag
	}
	// cases.Caser keeps internal state and is not safe for concurrent use.
	return cases.Lower(language.Und).String(tag)
}

// IsBlank reports whether s is empty or consists only of whitespace.
func IsBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// containsSpace reports whether s contains any Unicode whitespace.
func containsSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// SanitizeCandidates filters one batch of raw model candidates and converts the
// survivors to canonical hashtags.
//
// Blank entries are discarded silently. Entries containing whitespace cannot be
// a single hashtag and are returned in dropped so the caller can report them.
// Output order follows input order. The function never fails; the worst case is
// an empty result.
func SanitizeCandidates(batch []string) (kept []string, dropped []string) {
	kept = make([]string, 0, len(batch))
	for _, candidate := range batch {
		if IsBlank(candidate) {
			continue
		}
		if containsSpace(candidate) {
			dropped = append(dropped, candidate)
			continue
		}
		kept = append(kept, CanonicalHashtag(candidate))
	}
	return kept, dropped
}

// HashtagSet is an insertion-ordered set of hashtags keyed by canonical form.
// Two hashtags that differ only in case are the same member. The zero value is
// not usable; create one with NewHashtagSet.
//
// A HashtagSet belongs to a single request and is not safe for concurrent use.
type HashtagSet struct {
	index map[string]struct{}
	order []string
}

// NewHashtagSet creates an empty HashtagSet.
func NewHashtagSet() *HashtagSet {
	return &HashtagSet{
		index: make(map[string]struct{}),
	}
}

// Add inserts tag unless a case-insensitively equal member already exists.
// The stored value is the canonical form. It reports whether tag was added.
func (s *HashtagSet) Add(tag string) bool {
	canonical := CanonicalHashtag(tag)
	if _, exists := s.index[canonical]; exists {
		return false
	}
	s.index[canonical] = struct{}{}
	s.order = append(s.order, canonical)
	return true
}

// Merge adds every tag in order and returns how many were new. Merging the
// same batch twice leaves the set unchanged the second time.
func (s *HashtagSet) Merge(tags []string) int {
	added := 0
	for _, tag := range tags {
		if s.Add(tag) {
			added++
		}
	}
	return added
}

// Len returns the number of members.
func (s *HashtagSet) Len() int {
	return len(s.order)
}

// Take returns a copy of the first n members in insertion order. If n exceeds
// the set size, all members are returned; a negative n yields an empty slice.
func (s *HashtagSet) Take(n int) []string {
	if n < 0 {
		n = 0
	}
	if n > len(s.order) {
		n = len(s.order)
	}
	out := make([]string, n)
	copy(out, s.order[:n])
	return out
}
