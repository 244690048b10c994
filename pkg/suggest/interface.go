// Package suggest is the orchestration layer over the trie index: it owns
// locking, weight thresholds, result limits and the hot-word cache, and is
// what servers and CLIs talk to.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns suggestions for a given prefix with a limit
	Complete(prefix string, limit int) []Suggestion

	// AddWord adds a word with its weight to the completer
	AddWord(word string, weight int)

	// Stats returns statistics about the indexed words
	Stats() map[string]int
}
