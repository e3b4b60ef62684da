package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

// PatternMatcher filters paths through include and exclude lists. Each entry
// is tried as a glob and, when it compiles, as a regular expression against
// the full path. Globs containing a separator match the whole path, bare
// globs match the base name.
type PatternMatcher struct {
	includeGlobs []string
	includeRegex []*regexp.Regexp
	excludeGlobs []string
	excludeRegex []*regexp.Regexp
}

func NewPatternMatcher(includePatterns, excludePatterns []string) *PatternMatcher {
	return &PatternMatcher{
		includeGlobs: append([]string(nil), includePatterns...),
		includeRegex: compileRegex(includePatterns),
		excludeGlobs: append([]string(nil), excludePatterns...),
		excludeRegex: compileRegex(excludePatterns),
	}
}

// ShouldInclude applies include rules (when present, at least one must match)
// then exclude rules (none may match).
func (m *PatternMatcher) ShouldInclude(path string) bool {
	if m == nil {
		return true
	}
	if (len(m.includeGlobs) > 0 || len(m.includeRegex) > 0) && !m.matches(path, m.includeGlobs, m.includeRegex) {
		return false
	}
	if (len(m.excludeGlobs) > 0 || len(m.excludeRegex) > 0) && m.matches(path, m.excludeGlobs, m.excludeRegex) {
		return false
	}
	return true
}

func (m *PatternMatcher) matches(path string, globs []string, regexes []*regexp.Regexp) bool {
	base := filepath.Base(path)
	for _, pattern := range globs {
		target := base
		if strings.ContainsRune(pattern, filepath.Separator) || strings.ContainsRune(pattern, '/') {
			target = filepath.ToSlash(path)
			pattern = filepath.ToSlash(pattern)
		}
		if matched, _ := filepath.Match(pattern, target); matched {
			return true
		}
	}
	for _, re := range regexes {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

func compileRegex(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		if re, err := regexp.Compile(pattern); err == nil {
			compiled = append(compiled, re)
		}
	}
	return compiled
}
