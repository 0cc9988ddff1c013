// Package search provides the prefix-suggestion index consumed by the HTTP
// layer. It is a thin wrapper around an in-memory bleve index over card
// display names; callers treat it as a black box with build and suggest
// operations only.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"

	"lorad/pkg/types"
)

// Index holds one immutable generation of the suggestion index. A rescan
// builds a fresh Index and swaps it in; an Index is never mutated after Build.
type Index struct {
	idx   bleve.Index
	names map[string]string // doc id -> display name
}

// displayName picks the string a card is suggested by.
func displayName(c types.CardEntry) string {
	if c.Model.Name != "" {
		return c.Model.Name
	}
	return c.Model.FileName
}

// Build indexes the display name of every card.
func Build(cards []types.CardEntry) (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	names := make(map[string]string, len(cards))
	batch := idx.NewBatch()
	for i, c := range cards {
		id := fmt.Sprintf("card-%d", i)
		name := displayName(c)
		if name == "" {
			continue
		}
		if err := batch.Index(id, map[string]any{"name": name}); err != nil {
			return nil, fmt.Errorf("index card %d: %w", i, err)
		}
		names[id] = name
	}
	if err := idx.Batch(batch); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}
	return &Index{idx: idx, names: names}, nil
}

// Suggest returns up to limit card names whose name contains a term starting
// with prefix, sorted case-insensitively for deterministic output.
func (x *Index) Suggest(prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil, nil
	}
	q := bleve.NewPrefixQuery(prefix)
	q.SetField("name")
	res, err := x.idx.Search(bleve.NewSearchRequestOptions(q, limit, 0, false))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	out := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if name, ok := x.names[hit.ID]; ok {
			out = append(out, name)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out, nil
}

// Close releases the underlying bleve index.
func (x *Index) Close() error {
	return x.idx.Close()
}
