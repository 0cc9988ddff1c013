// Package catalog coordinates scanning, variant merging, and search indexing
// for the card catalog served over HTTP. It is the only stateful layer: the
// merge engine itself is pure, so all locking lives here.
package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"lorad/internal/registry"
	"lorad/internal/search"
	"lorad/internal/variant"
	"lorad/pkg/types"
)

type Catalog struct {
	mu      sync.RWMutex
	roots   []string
	scanner *registry.Scanner
	engine  *variant.Engine
	log     zerolog.Logger
	started time.Time

	seeds []types.Seed
	cards []types.CardEntry
	byKey map[string]int // normalized card key -> index into cards
	idx   *search.Index

	scans    uint64
	lastScan time.Time
	lastErr  string
}

// New builds a Catalog over the given scan roots. No scan happens until
// Rescan is called.
func New(roots []string, log zerolog.Logger) *Catalog {
	return &Catalog{
		roots:   append([]string(nil), roots...),
		scanner: registry.NewScanner(),
		engine:  variant.NewEngine(nil),
		log:     log,
		started: time.Now(),
	}
}

// Rescan runs the full pipeline from scratch: walk every root, merge the
// seeds into cards, rebuild the suggestion index, then swap everything in
// under the lock. There is no incremental path; a scan that fails leaves the
// previous generation serving.
func (c *Catalog) Rescan(ctx context.Context) (types.RescanResponse, error) {
	start := time.Now()
	seeds, err := c.scanner.ScanAll(c.roots)
	if err != nil {
		c.recordError(err)
		return types.RescanResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return types.RescanResponse{}, err
	}
	cards := c.engine.Merge(seeds)
	byKey := make(map[string]int, len(cards))
	for i, card := range cards {
		k := strings.ToLower(c.engine.NormalizeKey(card.Model))
		if _, dup := byKey[k]; !dup {
			byKey[k] = i
		}
	}
	idx, err := search.Build(cards)
	if err != nil {
		c.recordError(err)
		return types.RescanResponse{}, err
	}

	c.mu.Lock()
	old := c.idx
	c.seeds = seeds
	c.cards = cards
	c.byKey = byKey
	c.idx = idx
	c.scans++
	c.lastScan = time.Now()
	c.lastErr = ""
	c.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	dur := time.Since(start)
	observeScan(dur, len(seeds), cards)
	c.log.Info().
		Int("models", len(seeds)).
		Int("cards", len(cards)).
		Dur("dur", dur).
		Msg("rescan complete")
	return types.RescanResponse{
		Models:     len(seeds),
		Cards:      len(cards),
		DurationMS: dur.Milliseconds(),
	}, nil
}

func (c *Catalog) recordError(err error) {
	c.mu.Lock()
	c.lastErr = err.Error()
	c.mu.Unlock()
	c.log.Error().Err(err).Msg("rescan failed")
}

// Cards returns the current card list. The slice is copied so callers cannot
// mutate catalog state.
func (c *Catalog) Cards() []types.CardEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.CardEntry, len(c.cards))
	copy(out, c.cards)
	return out
}

// Card looks up a single card by its normalized key, case-insensitively.
func (c *Catalog) Card(key string) (types.CardEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i, ok := c.byKey[strings.ToLower(key)]; ok {
		return c.cards[i], nil
	}
	return types.CardEntry{}, ErrCardNotFound(key)
}

// ListModels returns every discovered checkpoint file, before merging.
func (c *Catalog) ListModels() []types.Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.Model, 0, len(c.seeds))
	for _, s := range c.seeds {
		out = append(out, s.Model)
	}
	return out
}

// Suggest proxies to the current index generation.
func (c *Catalog) Suggest(prefix string, limit int) ([]string, error) {
	c.mu.RLock()
	idx := c.idx
	c.mu.RUnlock()
	if idx == nil {
		return nil, nil
	}
	return idx.Suggest(prefix, limit)
}

// Ready reports whether at least one scan has completed.
func (c *Catalog) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scans > 0
}

// Status snapshots catalog counters for GET /status.
func (c *Catalog) Status() types.StatusResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()
	merged := 0
	for _, card := range c.cards {
		if len(card.Variants) > 1 {
			merged++
		}
	}
	var lastScan int64
	if !c.lastScan.IsZero() {
		lastScan = c.lastScan.Unix()
	}
	return types.StatusResponse{
		Roots:          append([]string(nil), c.roots...),
		Models:         len(c.seeds),
		Cards:          len(c.cards),
		MergedCards:    merged,
		ScansTotal:     c.scans,
		LastScanUnix:   lastScan,
		LastError:      c.lastErr,
		UptimeSeconds:  int64(time.Since(c.started).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
}
