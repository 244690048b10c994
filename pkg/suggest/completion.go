package suggest

import (
	"sync"

	"github.com/bastiangx/wordrank/pkg/trie"
)

// Suggestion represents a ranked word completion candidate
type Suggestion struct {
	Word   string
	Weight int
}

// Completer serves weighted prefix suggestions from a trie index.
// A single RWMutex guards the index since AddWord structurally mutates
// nodes that concurrent Complete calls traverse.
type Completer struct {
	index     *trie.Index
	hotCache  *HotCache
	totalAdds int
	maxWeight int
	minWeight int
	mu        sync.RWMutex
}

// NewCompleter initializes a completer without a hot cache.
func NewCompleter() *Completer {
	return &Completer{
		index: trie.NewIndex(),
	}
}

// NewCachedCompleter initializes a completer with a hot cache that memoizes
// ranked results for up to maxEntries recent prefixes.
func NewCachedCompleter(maxEntries int) *Completer {
	return &Completer{
		index:    trie.NewIndex(),
		hotCache: NewHotCache(maxEntries),
	}
}

// SetMinWeight sets the threshold below which suggestions are dropped.
func (c *Completer) SetMinWeight(w int) {
	c.mu.Lock()
	c.minWeight = w
	c.mu.Unlock()
}

// AddWord indexes word with the given weight. Adding the same word again
// accumulates weight, so callers can feed usage counts incrementally.
// Cached results for any prefix of word are invalidated.
func (c *Completer) AddWord(word string, weight int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index.Insert(word, weight)
	if word == "" {
		return
	}
	c.totalAdds++
	if total, ok := c.index.Weight(word); ok && total > c.maxWeight {
		c.maxWeight = total
	}
	if c.hotCache != nil {
		c.hotCache.Invalidate(word)
	}
}

// Complete returns up to limit suggestions for prefix, heaviest first.
// Ranked results come from the hot cache when the prefix was queried since
// its subtree last changed; the weight threshold and limit apply on the way
// out either way. A limit <= 0 means no cap.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var full []Suggestion
	if c.hotCache != nil {
		if cached, ok := c.hotCache.Get(prefix); ok {
			full = cached
		}
	}
	if full == nil {
		entries := c.index.Autocomplete(prefix)
		full = make([]Suggestion, 0, len(entries))
		for _, e := range entries {
			full = append(full, Suggestion{Word: e.Word, Weight: e.Weight})
		}
		if c.hotCache != nil && prefix != "" {
			c.hotCache.Put(prefix, full)
		}
	}

	out := make([]Suggestion, 0, len(full))
	for _, s := range full {
		if s.Weight < c.minWeight {
			continue
		}
		out = append(out, s)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Lookup returns every indexed word under prefix without any ranking,
// mirroring the index's raw enumeration. Mostly useful for debugging and
// dictionary export.
func (c *Completer) Lookup(prefix string) []Suggestion {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := c.index.SearchPrefix(prefix)
	suggestions := make([]Suggestion, 0, len(entries))
	for _, e := range entries {
		suggestions = append(suggestions, Suggestion{Word: e.Word, Weight: e.Weight})
	}
	return suggestions
}

// Weight reports the accumulated weight for an exact word.
func (c *Completer) Weight(word string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index.Weight(word)
}

// Stats returns statistics about the indexed words
func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := map[string]int{
		"totalWords": c.index.Len(),
		"totalAdds":  c.totalAdds,
		"maxWeight":  c.maxWeight,
		"minWeight":  c.minWeight,
	}
	if c.hotCache != nil {
		for k, v := range c.hotCache.Stats() {
			stats[k] = v
		}
	}
	return stats
}
