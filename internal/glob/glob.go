// Package glob is the single pattern matcher applied to cache keys.
// Both tiers (remote key scans and the in-process store) filter through the
// same compiled matcher so a pattern can never match in one tier and miss
// in the other.
//
// Syntax is path.Match: '*' and '?' wildcards, '[...]' ranges, '\' escapes.
// Cache keys are flat colon-separated strings and never contain '/', so the
// path-separator restriction of path.Match does not apply.
package glob

import (
	"fmt"
	"path"
	"strings"
)

// Compile validates pattern and returns a matcher for it.
// A malformed pattern (e.g. an unterminated range) is reported here, not
// silently treated as match-nothing.
func Compile(pattern string) (func(string) bool, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	return func(key string) bool {
		ok, err := path.Match(pattern, key)
		return err == nil && ok
	}, nil
}

// Escape quotes s so it matches only itself inside a pattern.
// Used when caller-supplied segments (e.g. a facility id) are spliced into
// a pattern next to real wildcards.
func Escape(s string) string {
	if !strings.ContainsAny(s, `*?[\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
