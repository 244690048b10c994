// Package dictionary reads and writes weighted word lists that seed a
// completer. Two formats are supported: plain text with one "word weight"
// pair per line, and a compact binary form with a record count header.
package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// WordSink receives loaded words. Completers satisfy it; weights accumulate
// when the same word arrives from several sources.
type WordSink interface {
	AddWord(word string, weight int)
}

// LoadTextFile reads "word weight" lines from path into sink and returns how
// many words were added. A line with no weight defaults to 1. Blank lines,
// comment lines and lines with an unparsable weight are skipped.
func LoadTextFile(path string, sink WordSink) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening dictionary %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.Errorf("closing %s: %v", path, cerr)
		}
	}()

	count := 0
	lineNo := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		word := fields[0]
		weight := 1
		if len(fields) > 1 {
			w, err := strconv.Atoi(fields[1])
			if err != nil {
				log.Warnf("%s:%d: bad weight %q, skipping line", path, lineNo, fields[1])
				continue
			}
			weight = w
		}
		sink.AddWord(word, weight)
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("reading dictionary %s: %w", path, err)
	}

	log.Debugf("Loaded %d words from text dictionary: %s", count, path)
	return count, nil
}

// LoadBinaryFile reads a binary dictionary from path into sink.
// Format: int32 record count, then per record a uint16 word length, the word
// bytes, and a uint32 weight, all little-endian.
func LoadBinaryFile(path string, sink WordSink) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening binary dictionary %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.Errorf("closing %s: %v", path, cerr)
		}
	}()

	reader := bufio.NewReader(file)

	var total int32
	if err := binary.Read(reader, binary.LittleEndian, &total); err != nil {
		return 0, fmt.Errorf("reading record count from %s: %w", path, err)
	}
	if total < 0 {
		return 0, fmt.Errorf("invalid record count %d in %s", total, path)
	}

	count := 0
	for count < int(total) {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				log.Warnf("Binary dictionary %s truncated at record %d of %d", path, count, total)
				break
			}
			return count, fmt.Errorf("reading word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return count, fmt.Errorf("reading word bytes: %w", err)
		}
		word := string(wordBytes)

		var weight uint32
		if err := binary.Read(reader, binary.LittleEndian, &weight); err != nil {
			return count, fmt.Errorf("reading weight for word %s: %w", word, err)
		}

		if weight > 0 {
			sink.AddWord(word, int(weight))
		} else {
			sink.AddWord(word, 1)
		}
		count++
	}

	log.Debugf("Loaded %d records from binary dictionary: %s", count, path)
	return count, nil
}

// SaveBinaryFile writes words to path in the binary dictionary format.
func SaveBinaryFile(path string, words map[string]int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating binary dictionary %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.Errorf("closing %s: %v", path, cerr)
		}
	}()

	writer := bufio.NewWriter(file)

	if err := binary.Write(writer, binary.LittleEndian, int32(len(words))); err != nil {
		return fmt.Errorf("writing record count: %w", err)
	}

	for word, weight := range words {
		if err := binary.Write(writer, binary.LittleEndian, uint16(len(word))); err != nil {
			return fmt.Errorf("writing word length: %w", err)
		}
		if _, err := writer.WriteString(word); err != nil {
			return fmt.Errorf("writing word %s: %w", word, err)
		}
		if err := binary.Write(writer, binary.LittleEndian, uint32(weight)); err != nil {
			return fmt.Errorf("writing weight for word %s: %w", word, err)
		}
	}
	return writer.Flush()
}
