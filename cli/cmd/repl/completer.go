package repl

import (
	"maps"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/tomelt/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "list", "edit", "infix", "postfix", "clear", "quit",
}

// exprBuiltins returns the names of the expr-lang builtin functions
// available to infix expressions, sorted for deterministic completion.
var exprBuiltins = sync.OnceValue(func() []string {
	return slices.Sorted(maps.Keys(builtin.Index))
})

// isWordBoundary returns true if the rune is a word delimiter for
// completion purposes. This includes whitespace and operator/punctuation
// characters of both expression notations. Hyphen-minus is a boundary
// because entry names cannot contain hyphens and '-' is the subtraction
// operator in both notations.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']',
		'+', '-', '*', '/', '%',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Words are delimited by whitespace and
// operator/punctuation characters.
// Returns an empty word when the cursor sits on a boundary (after a space,
// start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	word = input[start:end]

	return word, start, end
}

// candidateNames returns the completion vocabulary for the current mode
// and flavor: control commands in command mode, constant names plus the
// active notation's operator or builtin names in eval mode.
func (m model) candidateNames() []string {
	if m.mode == modeCtrl {
		return ctrlCommands
	}

	names := m.env.Names()

	if m.flavor == flavorInfix {
		return append(names, exprBuiltins()...)
	}

	return append(names, lang.Operators()...)
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. It returns the matches (ranked best-first), the candidate list,
// and the word boundaries. An empty word yields no matches so the hint
// text stays visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we

	if word == "" {
		return nil, nil, wordStart, wordEnd
	}

	candidates = m.candidateNames()
	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	matches = fuzzy.Find(word, candidates)

	return matches, candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit within the given terminal width. Each candidate is rendered with its
// matched characters highlighted. The selected candidate (when tabbing)
// uses the selected style. When markFuncs is set, builtin function names
// display with a "()" suffix.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
	markFuncs bool,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected, markFuncs)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth

		// If this is the last candidate, no need to reserve ellipsis space.
		if i == len(matches)-1 {
			break
		}
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected, markFuncs bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	// The suffix is display-only and not applied to the completion.
	if markFuncs && isBuiltin(match.Str) {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}

// isBuiltin checks if a name refers to an expr-lang builtin function.
func isBuiltin(name string) bool {
	_, ok := builtin.Index[name]

	return ok
}
