package variant

import (
	"strings"

	"lorad/pkg/types"
)

// Engine merges a scanned seed list into card entries. It holds no state
// across calls beyond the injected id generator.
type Engine struct {
	genID IDGenerator
}

// NewEngine returns an Engine. A nil gen falls back to random uuid tokens.
func NewEngine(gen IDGenerator) *Engine {
	if gen == nil {
		gen = defaultIDGenerator
	}
	return &Engine{genID: gen}
}

// groupKey decides "same logical model, different variant". It is only built
// when all three fields are non-empty; that invariant is enforced by Eligible
// before any lookup happens.
type groupKey struct {
	key       string
	modelID   string
	baseModel string
}

// variantGroup accumulates the variants sharing one groupKey. seed is the
// first seed that created the group and supplies the path fields of the
// eventual merged entry.
type variantGroup struct {
	seed     types.Seed
	variants map[string]types.Variant // lowercase label -> variant, last write wins
}

// marker records one output slot in first-seen order: either a finished
// standalone entry or a handle into the group arena.
type marker struct {
	group int // arena index, -1 for standalone
	entry types.CardEntry
}

// Merge consumes seeds in order and returns one CardEntry per distinct
// standalone file or variant group, preserving the position of first
// appearance for every entry. It is a stable group-by, not a sort: later
// seeds joining an existing group never move it.
//
// A nil seed slice is a caller bug and panics; an empty slice yields an empty
// result. Malformed metadata never fails a run, it degrades through the key
// fallback chain instead, so every input seed is represented in the output.
func (e *Engine) Merge(seeds []types.Seed) []types.CardEntry {
	if seeds == nil {
		panic("variant: Merge called with nil seed slice")
	}
	markers := make([]marker, 0, len(seeds))
	var groups []*variantGroup
	index := make(map[groupKey]int, len(seeds))

	for _, s := range seeds {
		c := ClassifyModel(s.Model)
		if c.Key == "" {
			c.Key = e.fallbackKey(s.Model)
		}
		if !Eligible(s.Model, c) {
			markers = append(markers, marker{group: -1, entry: standaloneEntry(s, c)})
			continue
		}
		gk := groupKey{
			key:       strings.ToLower(c.Key),
			modelID:   strings.ToLower(s.Model.ModelID),
			baseModel: strings.ToLower(s.Model.BaseModel),
		}
		gi, ok := index[gk]
		if !ok {
			gi = len(groups)
			groups = append(groups, &variantGroup{
				seed:     s,
				variants: make(map[string]types.Variant, 2),
			})
			index[gk] = gi
			markers = append(markers, marker{group: gi})
		}
		// Last write wins when two seeds carry the same label for one group;
		// the earlier file is silently replaced.
		groups[gi].variants[strings.ToLower(c.Label)] = types.Variant{Label: c.Label, Model: s.Model}
	}

	out := make([]types.CardEntry, 0, len(markers))
	for _, mk := range markers {
		if mk.group >= 0 {
			out = append(out, groups[mk.group].toEntry())
			continue
		}
		out = append(out, mk.entry)
	}
	return out
}

// standaloneEntry projects a non-eligible seed: a single-element variant list
// when a marker was recognized, otherwise no variants at all.
func standaloneEntry(s types.Seed, c Classification) types.CardEntry {
	entry := types.CardEntry{
		Model:        s.Model,
		SourcePath:   s.SourcePath,
		FolderPath:   s.FolderPath,
		TreePath:     s.TreePath,
		TreeSegments: s.TreeSegments,
	}
	if c.Label != "" {
		entry.Variants = []types.Variant{{Label: c.Label, Model: s.Model}}
	}
	return entry
}

// toEntry finalizes an accumulated group. The selected model is the highest
// priority variant; path fields come from the seed that created the group,
// not from whichever seed contributed the selected model.
func (g *variantGroup) toEntry() types.CardEntry {
	vs := make([]types.Variant, 0, len(g.variants))
	for _, v := range g.variants {
		vs = append(vs, v)
	}
	sortVariants(vs)
	return types.CardEntry{
		Model:        vs[0].Model,
		SourcePath:   g.seed.SourcePath,
		FolderPath:   g.seed.FolderPath,
		TreePath:     g.seed.TreePath,
		TreeSegments: g.seed.TreeSegments,
		Variants:     vs,
	}
}
