package suggest

import (
	"fmt"
	"sync"
	"testing"
)

func newSeeded(t *testing.T, cached bool) *Completer {
	t.Helper()
	var c *Completer
	if cached {
		c = NewCachedCompleter(64)
	} else {
		c = NewCompleter()
	}
	c.AddWord("apple", 5)
	c.AddWord("app", 2)
	c.AddWord("application", 3)
	c.AddWord("appliance", 4)
	return c
}

func TestCompleteRanking(t *testing.T) {
	for _, cached := range []bool{false, true} {
		t.Run(fmt.Sprintf("cached=%v", cached), func(t *testing.T) {
			c := newSeeded(t, cached)

			want := []Suggestion{
				{"apple", 5},
				{"appliance", 4},
				{"application", 3},
				{"app", 2},
			}
			got := c.Complete("app", 10)
			if len(got) != len(want) {
				t.Fatalf("expected %d suggestions, got %v", len(want), got)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("position %d: expected %v, got %v", i, want[i], got[i])
				}
			}
		})
	}
}

func TestCompleteLimit(t *testing.T) {
	c := newSeeded(t, false)

	got := c.Complete("app", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %v", got)
	}
	if got[0].Word != "apple" || got[1].Word != "appliance" {
		t.Errorf("limit should keep the heaviest entries, got %v", got)
	}

	if got := c.Complete("app", 0); len(got) != 4 {
		t.Errorf("limit 0 means no cap, got %v", got)
	}
}

func TestCompleteMinWeight(t *testing.T) {
	c := newSeeded(t, true)
	c.SetMinWeight(4)

	got := c.Complete("app", 10)
	if len(got) != 2 {
		t.Fatalf("threshold should drop light words, got %v", got)
	}

	// The threshold filters on the way out of the cache too.
	c.SetMinWeight(0)
	if got := c.Complete("app", 10); len(got) != 4 {
		t.Errorf("lowering the threshold should restore entries, got %v", got)
	}
}

func TestCompleteEmptyAndUnknownPrefix(t *testing.T) {
	c := newSeeded(t, true)

	if got := c.Complete("", 10); len(got) != 0 {
		t.Errorf("empty prefix should suggest nothing, got %v", got)
	}
	if got := c.Complete("xyz", 10); len(got) != 0 {
		t.Errorf("unknown prefix should suggest nothing, got %v", got)
	}
}

func TestWeightAccumulatesThroughCache(t *testing.T) {
	c := NewCachedCompleter(64)
	c.AddWord("go", 3)

	if got := c.Complete("g", 10); len(got) != 1 || got[0].Weight != 3 {
		t.Fatalf("expected go/3, got %v", got)
	}

	// Re-adding must bump the weight and invalidate the cached "g" result.
	c.AddWord("go", 4)
	if got := c.Complete("g", 10); len(got) != 1 || got[0].Weight != 7 {
		t.Fatalf("expected go/7 after accumulation, got %v", got)
	}

	if w, ok := c.Weight("go"); !ok || w != 7 {
		t.Errorf("Weight reported %d/%v", w, ok)
	}
}

func TestEmptyWordAddIsNoop(t *testing.T) {
	c := NewCompleter()
	c.AddWord("", 9)

	stats := c.Stats()
	if stats["totalWords"] != 0 || stats["totalAdds"] != 0 {
		t.Errorf("empty add should not register: %v", stats)
	}
}

func TestLookupUnordered(t *testing.T) {
	c := newSeeded(t, false)

	got := c.Lookup("app")
	if len(got) != 4 {
		t.Fatalf("expected all 4 words, got %v", got)
	}
	seen := make(map[string]int, len(got))
	for _, s := range got {
		seen[s.Word] = s.Weight
	}
	if seen["app"] != 2 || seen["apple"] != 5 || seen["appliance"] != 4 || seen["application"] != 3 {
		t.Errorf("unexpected lookup contents: %v", seen)
	}
}

func TestStats(t *testing.T) {
	c := newSeeded(t, true)
	c.Complete("app", 10)
	c.Complete("app", 10)

	stats := c.Stats()
	if stats["totalWords"] != 4 {
		t.Errorf("totalWords = %d", stats["totalWords"])
	}
	if stats["maxWeight"] != 5 {
		t.Errorf("maxWeight = %d", stats["maxWeight"])
	}
	if stats["cacheHits"] < 1 {
		t.Errorf("expected at least one cache hit: %v", stats)
	}
}

func TestConcurrentReadsAndWrites(t *testing.T) {
	c := NewCachedCompleter(32)
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.AddWord(fmt.Sprintf("word%d_%d", n, j), j+1)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Complete("word", 16)
			}
		}()
	}
	wg.Wait()

	if got := c.Stats()["totalWords"]; got != 800 {
		t.Errorf("expected 800 words after concurrent adds, got %d", got)
	}
}
