package suggest

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// HotCache memoizes ranked suggestion lists per query prefix. Keys live in a
// patricia trie so that inserting a word can invalidate exactly the cached
// prefixes of that word via VisitPrefixes, nothing more. Eviction is LRU
// once maxEntries is reached.
type HotCache struct {
	prefixes    *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	misses      int64
	maxEntries  int
	mu          sync.Mutex
}

type cacheEntry struct {
	suggestions []Suggestion
}

// NewHotCache creates an empty cache holding at most maxEntries prefixes.
func NewHotCache(maxEntries int) *HotCache {
	return &HotCache{
		prefixes:   patricia.NewTrie(),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the cached ranked suggestions for prefix, if present.
func (hc *HotCache) Get(prefix string) ([]Suggestion, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	item := hc.prefixes.Get(patricia.Prefix(prefix))
	if item == nil {
		hc.misses++
		return nil, false
	}
	hc.hits++
	hc.accessTime[prefix] = hc.nextAccess()
	return item.(*cacheEntry).suggestions, true
}

// Put stores the ranked suggestions for prefix, evicting the least recently
// used entry when full.
func (hc *HotCache) Put(prefix string, suggestions []Suggestion) {
	if hc.maxEntries <= 0 {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if hc.prefixes.Get(patricia.Prefix(prefix)) == nil && len(hc.accessTime) >= hc.maxEntries {
		hc.evictLRU()
	}
	hc.prefixes.Set(patricia.Prefix(prefix), &cacheEntry{suggestions: suggestions})
	hc.accessTime[prefix] = hc.nextAccess()
}

// Invalidate drops every cached prefix of word. Only those entries can have
// grown stale: a query result changes exactly when the inserted word falls
// under its prefix.
func (hc *HotCache) Invalidate(word string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	var stale []patricia.Prefix
	err := hc.prefixes.VisitPrefixes(patricia.Prefix(word), func(p patricia.Prefix, item patricia.Item) error {
		stale = append(stale, append(patricia.Prefix(nil), p...))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting cached prefixes: %v", err)
	}
	for _, p := range stale {
		hc.prefixes.Delete(p)
		delete(hc.accessTime, string(p))
	}
}

// Purge empties the cache.
func (hc *HotCache) Purge() {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	hc.prefixes = patricia.NewTrie()
	hc.accessTime = make(map[string]int64, hc.maxEntries)
}

// Len reports how many prefixes are cached.
func (hc *HotCache) Len() int {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	return len(hc.accessTime)
}

// Stats returns cache counters for the completer's Stats map.
func (hc *HotCache) Stats() map[string]int {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return map[string]int{
		"cachedPrefixes": len(hc.accessTime),
		"maxCached":      hc.maxEntries,
		"cacheHits":      int(hc.hits),
		"cacheMisses":    int(hc.misses),
	}
}

func (hc *HotCache) nextAccess() int64 {
	hc.accessCount++
	return hc.accessCount
}

func (hc *HotCache) evictLRU() {
	if len(hc.accessTime) == 0 {
		return
	}
	var oldestPrefix string
	oldestTime := int64(1<<63 - 1)

	for prefix, at := range hc.accessTime {
		if at < oldestTime {
			oldestTime = at
			oldestPrefix = prefix
		}
	}
	hc.prefixes.Delete(patricia.Prefix(oldestPrefix))
	delete(hc.accessTime, oldestPrefix)
	log.Debugf("Evicted prefix '%s' from hot cache", oldestPrefix)
}
