package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mgignac/swifstat/internal/discovery"
)

// Pattern represents a compiled filter condition supporting substring and regex matching.
type Pattern struct {
	raw   string
	regex *regexp.Regexp
	lower string
}

// Compile transforms raw pattern strings into Pattern values. Patterns
// wrapped in slashes are regular expressions; anything else is a
// case-insensitive substring.
func Compile(patterns []string) ([]Pattern, error) {
	result := make([]Pattern, 0, len(patterns))
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") && len(raw) >= 2 {
			expr := raw[1 : len(raw)-1]
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("compile regexp %q: %w", raw, err)
			}
			result = append(result, Pattern{raw: raw, regex: re})
			continue
		}
		result = append(result, Pattern{raw: raw, lower: strings.ToLower(raw)})
	}
	return result, nil
}

// Match reports whether the pattern matches the supplied string.
func (p Pattern) Match(s string) bool {
	if s == "" {
		return false
	}
	if p.regex != nil {
		return p.regex.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), p.lower)
}

func (p Pattern) String() string {
	return p.raw
}

// Workflows keeps the workflows matching any include pattern (all of them
// when include is empty) and no exclude pattern. Order and indexes are
// preserved.
func Workflows(workflows []discovery.Workflow, include, exclude []Pattern) []discovery.Workflow {
	if len(workflows) == 0 {
		return nil
	}
	result := make([]discovery.Workflow, 0, len(workflows))
	for _, wf := range workflows {
		if len(include) > 0 && !matchesAny(wf.Name, include) {
			continue
		}
		if len(exclude) > 0 && matchesAny(wf.Name, exclude) {
			continue
		}
		result = append(result, wf)
	}
	return result
}

func matchesAny(name string, patterns []Pattern) bool {
	for _, pattern := range patterns {
		if pattern.Match(name) {
			return true
		}
	}
	return false
}
