package patterns

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule is one user-supplied pattern as it appears in a rules file.
// Category is required for behavioral rules and must name one of the
// four behavior categories.
type Rule struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category,omitempty"`
	Pattern  string   `yaml:"pattern"`
	Keywords []string `yaml:"keywords,omitempty"`
}

// RuleFile is the on-disk layout of a custom rules file.
type RuleFile struct {
	Suspicious []Rule `yaml:"suspicious,omitempty"`
	Crypto     []Rule `yaml:"crypto,omitempty"`
	Behavioral []Rule `yaml:"behavioral,omitempty"`
}

// maxRuleFileSize bounds a single rules file (1 MB).
const maxRuleFileSize = 1 << 20

// LoadRules reads and parses a YAML rules file. Parsing is strict about
// shape but does not compile the patterns; With does that.
func LoadRules(path string) (*RuleFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat rules file: %w", err)
	}
	if info.Size() > maxRuleFileSize {
		return nil, fmt.Errorf("rules file %s too large: %d bytes", path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	return &rf, nil
}

// With compiles the rules in rf and returns a new Set extending the
// receiver. The receiver is never modified. A rule that fails to compile
// fails the whole call; no partial rule sets.
func (s *Set) With(rf *RuleFile) (*Set, error) {
	if rf == nil {
		return s, nil
	}

	sus, err := compileRules(rf.Suspicious, false)
	if err != nil {
		return nil, fmt.Errorf("suspicious: %w", err)
	}
	cry, err := compileRules(rf.Crypto, false)
	if err != nil {
		return nil, fmt.Errorf("crypto: %w", err)
	}
	beh, err := compileRules(rf.Behavioral, true)
	if err != nil {
		return nil, fmt.Errorf("behavioral: %w", err)
	}

	return &Set{
		Suspicious: s.Suspicious.extend(sus),
		Crypto:     s.Crypto.extend(cry),
		Behavioral: s.Behavioral.extend(beh),
	}, nil
}

func compileRules(rules []Rule, behavioral bool) ([]Pattern, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	out := make([]Pattern, 0, len(rules))
	for i, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d: missing name", i)
		}
		if r.Pattern == "" {
			return nil, fmt.Errorf("rule %s: missing pattern", r.Name)
		}
		category := ""
		if behavioral {
			if !validCategory(r.Category) {
				return nil, fmt.Errorf("rule %s: unknown category %q", r.Name, r.Category)
			}
			category = r.Category
		}
		p, err := compilePattern(r.Name, category, r.Pattern, r.Keywords)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.Name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func validCategory(c string) bool {
	for _, known := range BehaviorCategories() {
		if c == known {
			return true
		}
	}
	return false
}
