package utils

import "testing"

func TestShouldInclude(t *testing.T) {
	matcher := NewPatternMatcher(nil, nil)
	if !matcher.ShouldInclude("file.txt") {
		t.Fatal("expected include by default")
	}
	matcher = NewPatternMatcher([]string{"*.jpg"}, nil)
	if matcher.ShouldInclude("file.txt") {
		t.Fatal("should not include unmatched include pattern")
	}
	if !matcher.ShouldInclude("photo.jpg") {
		t.Fatal("expected include for matched pattern")
	}
}

func TestShouldIncludeExcludeWins(t *testing.T) {
	matcher := NewPatternMatcher(nil, []string{"*.tmp"})
	if matcher.ShouldInclude("scratch.tmp") {
		t.Fatal("excluded pattern should be dropped")
	}
	if !matcher.ShouldInclude("keep.txt") {
		t.Fatal("unexcluded file should pass")
	}
}

func TestShouldIncludePathGlob(t *testing.T) {
	matcher := NewPatternMatcher(nil, []string{"/proc/*"})
	if matcher.ShouldInclude("/proc/cpuinfo") {
		t.Fatal("path glob should match full path")
	}
	if !matcher.ShouldInclude("/home/user/cpuinfo") {
		t.Fatal("path glob must not match other directories")
	}
}

func TestShouldIncludeRegex(t *testing.T) {
	matcher := NewPatternMatcher(nil, []string{`node_modules`})
	if matcher.ShouldInclude("/src/node_modules/pkg/index.js") {
		t.Fatal("regex exclude should match substring of path")
	}
	var nilMatcher *PatternMatcher
	if !nilMatcher.ShouldInclude("anything") {
		t.Fatal("nil matcher includes everything")
	}
}
