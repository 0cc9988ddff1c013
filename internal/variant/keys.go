package variant

import (
	"strings"

	"github.com/google/uuid"

	"lorad/pkg/types"
)

// IDGenerator produces a process-unique token for models whose metadata
// yields no usable key. Injected so tests can supply a deterministic fake.
type IDGenerator func() string

func defaultIDGenerator() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NormalizeKey derives the grouping key for m. The chain below exists because
// real-world filenames are inconsistent: some carry clean identifiers, some
// only a human-readable title, some neither. Each step runs only when the
// previous one produced nothing; the terminal step guarantees a non-empty
// result and that two unidentifiable models never collide with each other.
func (e *Engine) NormalizeKey(m types.Model) string {
	if c := ClassifyModel(m); c.Key != "" {
		return c.Key
	}
	return e.fallbackKey(m)
}

// fallbackKey runs the chain below the structured-identity step.
func (e *Engine) fallbackKey(m types.Model) string {
	if c := ClassifyText(m.FileName); c.Key != "" {
		return c.Key
	}
	if c := ClassifyText(m.VersionName); c.Key != "" {
		return c.Key
	}
	raw := m.FileName
	if raw == "" {
		raw = m.VersionName
	}
	if k := alnum(raw); k != "" {
		return k
	}
	return e.genID()
}

// alnum strips every rune that is not an ASCII letter or digit and lowercases
// the rest.
func alnum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
