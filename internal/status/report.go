package status

import (
	"sort"
	"strconv"
	"strings"
)

// Report maps field names to the raw values printed by `swif2 status` for one
// workflow. Keys are the trimmed left-hand sides of key=value lines.
type Report map[string]string

// Parse turns raw status text into a Report. Lines without '=' are ignored;
// when a key repeats, the last value wins. Empty input yields an empty Report.
func Parse(text string) Report {
	report := make(Report)
	for _, line := range strings.Split(text, "\n") {
		idx := strings.Index(line, "=")
		if idx == -1 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key == "" {
			continue
		}
		report[key] = strings.TrimSpace(line[idx+1:])
	}
	return report
}

// Lookup returns the raw value of f and whether the report carries it.
func (r Report) Lookup(f Field) (string, bool) {
	v, ok := r[string(f)]
	return v, ok
}

// Int returns the numeric value of f. ok is false when the field is absent or
// not an integer.
func (r Report) Int(f Field) (value int64, ok bool) {
	raw, present := r.Lookup(f)
	if !present {
		return 0, false
	}
	return ParseInt(raw)
}

// Labels returns the distinct non-empty entries of the comma separated
// problem_types field, in first-seen order.
func (r Report) Labels() []string {
	raw, ok := r.Lookup(ProblemTypes)
	if !ok || raw == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var labels []string
	for _, part := range strings.Split(raw, ",") {
		label := strings.TrimSpace(part)
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	return labels
}

// Unknown returns, sorted, the keys that are neither tracked, identity nor
// problem_types fields.
func (r Report) Unknown() []string {
	var keys []string
	for key := range r {
		f := Field(key)
		if IsTracked(f) || IsIdentity(f) || f == ProblemTypes {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ParseInt parses a base-10 integer that may contain ',' thousands
// separators, e.g. "12,345". ok is false for anything else.
func ParseInt(value string) (int64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
