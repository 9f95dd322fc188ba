package lang

import "strings"

// Comment block delimiters recognized in raw source text.
const (
	CommentOpen  = "{{!"
	CommentClose = "}}"
)

// Comment is one extracted block comment. Line is the index, in the
// raw document, of the line where the block opened.
type Comment struct {
	Text string
	Line int
}

// Extraction is the result of stripping block comments from raw text.
type Extraction struct {
	// Text is the source with every comment-block line removed.
	Text string

	// Comments holds each completed block, in closing order.
	Comments []Comment

	// Dangling is set when the last block was never closed. Its
	// buffered lines are dropped from Text and it is not recorded in
	// Comments, but callers may use it to warn about the silent loss.
	Dangling *Comment
}

// Extract removes {{! ... }} block comments from text.
//
// The scan is line-oriented. A line containing the opening marker
// begins a block at that line, even when a block is already open: the
// new line index becomes the recorded start, and previously buffered
// lines are kept. A line containing the closing marker while a block
// is open completes it: the buffered lines are joined with single
// spaces, trimmed, and recorded with the opening line's index. Lines
// belonging to a block never reach the cleaned output. Markers are
// retained in the recorded text.
//
// Note a line holding both markers only opens a block. Closing is
// honored on subsequent lines.
func Extract(text string) Extraction {
	var (
		cleaned  []string
		comments []Comment
		buffer   []string
		inside   bool
		start    int
	)

	for i, line := range splitLines(text) {
		switch {
		case strings.Contains(line, CommentOpen):
			inside = true
			start = i
			buffer = append(buffer, line)

		case inside && strings.Contains(line, CommentClose):
			buffer = append(buffer, line)

			comments = append(comments, Comment{
				Text: joinBlock(buffer),
				Line: start,
			})

			buffer = nil
			inside = false

		case inside:
			buffer = append(buffer, line)

		default:
			cleaned = append(cleaned, line)
		}
	}

	ext := Extraction{
		Text:     strings.Join(cleaned, "\n"),
		Comments: comments,
	}

	if inside {
		ext.Dangling = &Comment{Text: joinBlock(buffer), Line: start}
	}

	return ext
}

// splitLines splits text on newlines. A trailing newline does not
// produce a final empty line, and carriage returns preceding a newline
// are dropped.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// joinBlock collapses a buffered comment block to one line.
func joinBlock(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, " "))
}
