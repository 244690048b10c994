// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordrank/internal/utils"
	"github.com/bastiangx/wordrank/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler processes user input from stdin, providing suggestions.
// A plain line is a prefix query; a line starting with '+' inserts a word
// into the live index ("+word 5", weight defaults to 1).
type InputHandler struct {
	completer       suggest.ICompleter
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("wordrank CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a prefix and press Enter for suggestions, or '+word N' to insert (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "+") {
			h.handleInsert(line[1:])
			continue
		}
		h.handleQuery(line)
	}
}

// handleInsert parses "+word N" lines and feeds the word to the completer.
func (h *InputHandler) handleInsert(arg string) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		log.Error("Nothing to insert; usage: +word N")
		return
	}
	word := fields[0]
	weight := 1
	if len(fields) > 1 {
		w, err := strconv.Atoi(fields[1])
		if err != nil {
			log.Errorf("Bad weight %q; usage: +word N", fields[1])
			return
		}
		weight = w
	}
	h.completer.AddWord(word, weight)
	if total, ok := h.completer.(interface{ Weight(string) (int, bool) }); ok {
		if w, found := total.Weight(word); found {
			log.Printf("Inserted '%s' (weight now %s)", word, utils.FormatWithCommas(w))
			return
		}
	}
	log.Printf("Inserted '%s'", word)
}

// handleQuery validates a prefix and prints ranked suggestions for it.
func (h *InputHandler) handleQuery(prefix string) {
	if len(prefix) < h.minPrefixLength {
		log.Errorf("Prefix too short: %s", prefix)
		return
	}
	if len(prefix) > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidInput(prefix) {
			log.Infof("No results found for prefix: '%s'", prefix)
			return
		}
	} else {
		log.Debug("Input filtering disabled - querying raw input")
	}

	start := time.Now()
	log.Debug("Processing request for", "prefix", prefix)

	suggestions := h.completer.Complete(prefix, h.suggestLimit)

	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for prefix '%s'", elapsed, prefix)

	if len(suggestions) == 0 {
		log.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	log.Printf("Found %d suggestions for prefix '%s':", len(suggestions), prefix)
	for i, s := range suggestions {
		fmtWeight := utils.FormatWithCommas(s.Weight)
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Word)
		log.Printf("%2d. %-40s (weight: %8s)", i+1, clWord, fmtWeight)
	}
}
