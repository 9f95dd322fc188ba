package repl

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// HistoryEntry is a single submitted input together with the mode and
// expression flavor it was submitted under.
type HistoryEntry struct {
	Line   string
	Mode   inputMode
	Flavor evalFlavor
}

// prefix encodes the entry's mode and flavor as the on-disk line prefix.
func (e HistoryEntry) prefix() string {
	switch {
	case e.Mode == modeCtrl:
		return "C:"
	case e.Flavor == flavorInfix:
		return "I:"
	default:
		return "P:"
	}
}

// parseHistoryLine decodes one history file line. Lines written before
// prefixes existed load as postfix eval entries.
func parseHistoryLine(line string) HistoryEntry {
	if s, ok := strings.CutPrefix(line, "C:"); ok {
		return HistoryEntry{Line: s, Mode: modeCtrl}
	}

	if s, ok := strings.CutPrefix(line, "I:"); ok {
		return HistoryEntry{Line: s, Mode: modeEval, Flavor: flavorInfix}
	}

	if s, ok := strings.CutPrefix(line, "P:"); ok {
		return HistoryEntry{Line: s, Mode: modeEval, Flavor: flavorPostfix}
	}

	return HistoryEntry{Line: line, Mode: modeEval, Flavor: flavorPostfix}
}

// History manages submitted inputs with file persistence.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory creates a new History persisted at the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		h.entries = append(h.entries, parseHistoryLine(line))
	}

	return scanner.Err()
}

// WriteEntry appends entry to the history. A duplicate (same line, mode,
// and flavor) replaces the earlier occurrence so recent entries stay
// last. Blank lines are ignored.
func (h *History) WriteEntry(entry HistoryEntry) (int, error) {
	entry.Line = strings.TrimSpace(entry.Line)
	if entry.Line == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Skip if same as last entry
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return len(entry.Line), nil
	}

	needsRewrite := false

	for i := 0; i < len(h.entries); i++ {
		if h.entries[i] == entry {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			needsRewrite = true

			break
		}
	}

	h.entries = append(h.entries, entry)

	// Removing a duplicate invalidates the file layout, so rewrite it.
	// Otherwise a plain append suffices.
	if needsRewrite {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(entry.prefix() + entry.Line + "\n")
}

// GetEntry retrieves a historic entry by index.
// Index 0 is the oldest entry.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all history entries.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]HistoryEntry, len(h.entries))
	copy(result, h.entries)

	return result
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() (int, error) {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	totalBytes := 0

	for _, entry := range h.entries {
		n, err := file.WriteString(entry.prefix() + entry.Line + "\n")
		if err != nil {
			return totalBytes, err
		}

		totalBytes += n
	}

	return totalBytes, nil
}
