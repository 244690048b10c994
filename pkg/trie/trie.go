// Package trie implements the weighted prefix index behind wordrank.
//
// Every inserted word lives on a root-to-terminal path, one rune per edge.
// Weights accumulate across repeated inserts of the same word and drive the
// descending order of Autocomplete results. All operations are total: empty
// or unknown inputs yield an empty result or a no-op, never an error.
package trie

import "sort"

// Entry pairs a stored word with its accumulated weight.
type Entry struct {
	Word   string
	Weight int
}

// node is a single trie node, exclusively owned by its parent.
// weight is only meaningful while isWord is set.
type node struct {
	children map[rune]*node
	isWord   bool
	weight   int
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Index is a prefix tree over inserted words. The zero value is not usable;
// call NewIndex.
type Index struct {
	root *node
}

// NewIndex returns an empty index with a permanent root node.
func NewIndex() *Index {
	return &Index{root: newNode()}
}

// Insert adds word with the given weight, extending the trie as needed.
// Inserting the same word again adds to its stored weight rather than
// replacing it. The empty word is a no-op.
func (ix *Index) Insert(word string, weight int) {
	if word == "" {
		return
	}
	n := ix.root
	for _, r := range word {
		child, ok := n.children[r]
		if !ok {
			child = newNode()
			n.children[r] = child
		}
		n = child
	}
	n.isWord = true
	n.weight += weight
}

// SearchPrefix returns every stored word starting with prefix, paired with
// its weight. The prefix itself is included when it is a stored word. An
// empty prefix enumerates the entire index. The result carries no ranking
// guarantee; entries appear in depth-first order with children visited by
// ascending rune.
func (ix *Index) SearchPrefix(prefix string) []Entry {
	n := ix.root
	for _, r := range prefix {
		child, ok := n.children[r]
		if !ok {
			return nil
		}
		n = child
	}
	return collect(n, prefix, nil)
}

// Autocomplete returns suggestions for prefix ordered by weight, highest
// first. The sort is stable, so equal weights keep their enumeration order.
// An empty prefix returns nothing: no input means no suggestions, as opposed
// to SearchPrefix which treats it as "everything".
func (ix *Index) Autocomplete(prefix string) []Entry {
	if prefix == "" {
		return nil
	}
	entries := ix.SearchPrefix(prefix)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Weight > entries[j].Weight
	})
	return entries
}

// collect walks the subtree under n depth-first, appending an Entry for
// every terminal node. Child runes are visited in ascending order so
// enumeration is deterministic regardless of map iteration.
func collect(n *node, word string, out []Entry) []Entry {
	if n.isWord {
		out = append(out, Entry{Word: word, Weight: n.weight})
	}
	runes := make([]rune, 0, len(n.children))
	for r := range n.children {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	for _, r := range runes {
		out = collect(n.children[r], word+string(r), out)
	}
	return out
}

// Weight reports the accumulated weight of word and whether it is stored.
func (ix *Index) Weight(word string) (int, bool) {
	n := ix.root
	for _, r := range word {
		child, ok := n.children[r]
		if !ok {
			return 0, false
		}
		n = child
	}
	if !n.isWord {
		return 0, false
	}
	return n.weight, true
}

// Len reports how many distinct words the index holds.
func (ix *Index) Len() int {
	return countWords(ix.root)
}

func countWords(n *node) int {
	count := 0
	if n.isWord {
		count++
	}
	for _, child := range n.children {
		count += countWords(child)
	}
	return count
}
