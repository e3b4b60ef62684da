// Package patterns holds the curated regular-expression libraries used by the
// heuristic, behavioral and header-inspection techniques. Libraries are built
// once and are safe for concurrent readers.
package patterns

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Behavior categories. Behavioral patterns carry exactly one of these.
const (
	CategoryFilesystemTampering = "filesystem_tampering"
	CategoryRegistryPersistence = "registry_persistence"
	CategoryNetworkExfiltration = "network_exfiltration"
	CategoryCryptoTheft         = "crypto_theft"
)

func BehaviorCategories() []string {
	return []string{
		CategoryFilesystemTampering,
		CategoryRegistryPersistence,
		CategoryNetworkExfiltration,
		CategoryCryptoTheft,
	}
}

// Pattern is one compiled detection rule. All patterns compile
// case-insensitive so they behave the same on raw bytes and on
// lower-cased text. Keywords, when present, are literal prefilters:
// a pattern is only evaluated when at least one of its keywords
// occurs in the input.
type Pattern struct {
	Name     string
	Category string
	expr     string
	re       *regexp.Regexp
	keywords []string
}

func (p Pattern) Expr() string { return p.expr }

// Count returns how many times the pattern matches text.
func (p Pattern) Count(text string) int {
	return len(p.re.FindAllStringIndex(text, -1))
}

// MatchBytes reports whether the pattern matches anywhere in buf.
// Used for byte-wise scans of binary prefixes.
func (p Pattern) MatchBytes(buf []byte) bool {
	return p.re.Match(buf)
}

func newPattern(name, expr string, keywords ...string) Pattern {
	return Pattern{
		Name:     name,
		expr:     expr,
		re:       regexp.MustCompile(`(?i)` + expr),
		keywords: lowerAll(keywords),
	}
}

func newBehavior(category, name, expr string, keywords ...string) Pattern {
	p := newPattern(name, expr, keywords...)
	p.Category = category
	return p
}

func compilePattern(name, category, expr string, keywords []string) (Pattern, error) {
	re, err := regexp.Compile(`(?i)` + expr)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{
		Name:     name,
		Category: category,
		expr:     expr,
		re:       re,
		keywords: lowerAll(keywords),
	}, nil
}

func lowerAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Hit is one matched pattern with its match count.
type Hit struct {
	Pattern Pattern
	Count   int
}

// Library is an ordered, immutable set of patterns sharing one literal
// prefilter. The prefilter collects every pattern keyword into a single
// multi-pattern matcher; patterns without keywords are always evaluated.
type Library struct {
	name     string
	patterns []Pattern
	matcher  *ahocorasick.Matcher
	owners   [][]int
	ungated  []int
}

func NewLibrary(name string, pats []Pattern) *Library {
	l := &Library{name: name, patterns: pats}

	var tokens []string
	tokenIndex := make(map[string]int)
	for i, p := range pats {
		if len(p.keywords) == 0 {
			l.ungated = append(l.ungated, i)
			continue
		}
		for _, kw := range p.keywords {
			ti, ok := tokenIndex[kw]
			if !ok {
				ti = len(tokens)
				tokenIndex[kw] = ti
				tokens = append(tokens, kw)
				l.owners = append(l.owners, nil)
			}
			l.owners[ti] = append(l.owners[ti], i)
		}
	}
	if len(tokens) > 0 {
		l.matcher = ahocorasick.NewStringMatcher(tokens)
	}
	return l
}

func (l *Library) Name() string { return l.name }

func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.patterns)
}

func (l *Library) Patterns() []Pattern {
	if l == nil {
		return nil
	}
	return l.patterns
}

// Scan lower-cases text, gates on the literal prefilter and evaluates the
// surviving patterns. Hits come back in library order.
func (l *Library) Scan(text string) []Hit {
	if l.Len() == 0 {
		return nil
	}
	lower := strings.ToLower(text)

	var hits []Hit
	for _, idx := range l.candidates(lower) {
		if n := l.patterns[idx].Count(lower); n > 0 {
			hits = append(hits, Hit{Pattern: l.patterns[idx], Count: n})
		}
	}
	return hits
}

// AnyBytes evaluates patterns byte-wise against buf and returns the first
// match. No prefilter here: binary prefixes are short and the caller runs
// this once per file.
func (l *Library) AnyBytes(buf []byte) (Pattern, bool) {
	if l == nil {
		return Pattern{}, false
	}
	for _, p := range l.patterns {
		if p.MatchBytes(buf) {
			return p, true
		}
	}
	return Pattern{}, false
}

func (l *Library) candidates(lower string) []int {
	if l.matcher == nil {
		all := make([]int, len(l.patterns))
		for i := range all {
			all[i] = i
		}
		return all
	}

	marks := make([]bool, len(l.patterns))
	for _, i := range l.ungated {
		marks[i] = true
	}
	for _, ti := range l.matcher.MatchThreadSafe([]byte(lower)) {
		if ti < 0 || ti >= len(l.owners) {
			continue
		}
		for _, pi := range l.owners[ti] {
			marks[pi] = true
		}
	}

	out := make([]int, 0, len(l.patterns))
	for i, m := range marks {
		if m {
			out = append(out, i)
		}
	}
	return out
}

// extend returns a new library with extra patterns appended after the
// built-in ones. The receiver is not modified.
func (l *Library) extend(extra []Pattern) *Library {
	if len(extra) == 0 {
		return l
	}
	combined := make([]Pattern, 0, l.Len()+len(extra))
	combined = append(combined, l.Patterns()...)
	combined = append(combined, extra...)
	return NewLibrary(l.name, combined)
}

// Set bundles the three libraries a scan needs. Built once at startup and
// shared read-only across scans.
type Set struct {
	Suspicious *Library
	Crypto     *Library
	Behavioral *Library
}

var defaultSet = &Set{
	Suspicious: NewLibrary("suspicious", suspiciousPatterns()),
	Crypto:     NewLibrary("crypto", cryptoPatterns()),
	Behavioral: NewLibrary("behavioral", behavioralPatterns()),
}

func Defaults() *Set { return defaultSet }

// HasCryptoKeyword reports whether lower-cased text contains one of the
// short wallet-related keywords. Drives the size-anomaly indicator for
// small files; deliberately narrower than the crypto library.
func HasCryptoKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range cryptoKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var cryptoKeywords = []string{
	"wallet",
	"bitcoin",
	"ethereum",
	"private key",
	"seed phrase",
	"mnemonic",
}
