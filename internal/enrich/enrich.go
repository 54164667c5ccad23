// Package enrich implements the deterministic, rule-based tag derivation
// layer. It is a pure function over its inputs and the fixed lookup tables in
// tables.go: no I/O, no randomness, no state shared between calls.
package enrich

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultMinTags is the floor the padding step must satisfy.
	DefaultMinTags = 6
	// DefaultMaxTags is the ceiling applied by the final truncation.
	DefaultMaxTags = 10
)

// tagSet is an insertion-ordered string set. Discovery order is the final
// ranking: everything after position max is dropped by the truncation step.
type tagSet struct {
	order []string
	seen  map[string]struct{}
}

func newTagSet() *tagSet {
	return &tagSet{seen: make(map[string]struct{})}
}

func (s *tagSet) add(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	if isASCII(tag) {
		tag = strings.ToLower(tag)
	}
	if _, ok := s.seen[tag]; ok {
		return
	}
	s.seen[tag] = struct{}{}
	s.order = append(s.order, tag)
}

func (s *tagSet) addAll(tags []string) {
	for _, t := range tags {
		s.add(t)
	}
}

func (s *tagSet) len() int { return len(s.order) }

// Enrich derives a bounded, deduplicated tag set from the seed tags and the
// draft context. Each step only adds; the result is capped to max at the end,
// so earlier steps win when there are more candidates than room.
func Enrich(seed []string, ec Context, min, max int) []string {
	if min <= 0 {
		min = DefaultMinTags
	}
	if max < min {
		max = DefaultMaxTags
	}

	set := newTagSet()

	// 1. Seed with caller-supplied tags (typically model output).
	set.addAll(seed)

	text := ec.NormalizedText

	// 2. Brand keywords in the free text.
	for _, b := range brandTable {
		if strings.Contains(text, b.key) {
			set.addAll(b.tags)
		}
	}

	// 3. Billing/task/account/etc. keyword patterns.
	for _, p := range keywordPatterns {
		if p.re.MatchString(text) {
			set.addAll(p.tags)
		}
	}

	// 4. Location keywords.
	for _, g := range geoPatterns {
		if g.re.MatchString(text) {
			set.addAll(g.tags)
		}
	}

	// 5. URL-derived tags.
	addURLTags(set, ec.URL)

	// 6. Synonym expansion, single pass over a snapshot of the set so the
	// added synonyms are not themselves expanded.
	snapshot := make([]string, len(set.order))
	copy(snapshot, set.order)
	for _, t := range snapshot {
		if syn, ok := synonymTable[t]; ok {
			set.addAll(syn)
		}
	}

	// 7. Loose keyword extraction.
	addLooseKeywords(set, text)

	// 8. Pad from the fixed vocabulary until the floor is met.
	for _, t := range fallbackVocabulary {
		if set.len() >= min {
			break
		}
		set.add(t)
	}

	// 9. Truncate, preserving insertion order.
	if set.len() > max {
		return set.order[:max]
	}
	return set.order
}

// addURLTags contributes the hostname, the registrable-domain label and any
// brand hits found in the hostname. Malformed URLs contribute nothing and
// never raise.
func addURLTags(set *tagSet, raw string) {
	if raw == "" {
		return
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return
	}
	host := strings.ToLower(u.Hostname())
	set.add(host)
	set.add(domainLabel(host))
	for _, b := range brandTable {
		if strings.Contains(host, b.key) {
			set.addAll(b.tags)
		}
	}
}

// domainLabel returns the label of the registrable domain: the public-suffix
// list answer when available, otherwise the second-to-last dot segment.
func domainLabel(host string) string {
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		if i := strings.IndexByte(etld1, '.'); i > 0 {
			return etld1[:i]
		}
		return etld1
	}
	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return host
}

// addLooseKeywords detects date/amount/year shapes and pulls out a handful of
// literal tokens: up to 3 katakana runs and up to 3 ASCII words, first in
// scan order. The text is already normalized, so ASCII is lower case.
func addLooseKeywords(set *tagSet, text string) {
	if dateRe.MatchString(text) {
		set.add("日付")
	}
	if moneyRe.MatchString(text) {
		set.add("金額")
	}
	if yearRe.MatchString(text) {
		set.add("年")
	}
	for _, m := range kataRe.FindAllString(text, 3) {
		set.add(m)
	}
	for _, m := range asciiRe.FindAllString(text, 3) {
		set.add(m)
	}
}
