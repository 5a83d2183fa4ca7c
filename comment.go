package varconf

import "strings"

const (
	commentStart = "<#"
	commentEnd   = "#>"
)

// source is comment-free text split into lines, each remembering the
// line it started on in the original input.
type source struct {
	lines  []string
	origin []int
}

// stripComments removes every <# ... #> region, including the newlines
// inside it. Comments do not nest and are not quote aware.
func stripComments(text string) (*source, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var b strings.Builder
	origin := []int{1}
	line := 1

	for {
		start := strings.Index(text, commentStart)
		if start < 0 {
			break
		}
		for _, c := range text[:start] {
			b.WriteRune(c)
			if c == '\n' {
				line++
				origin = append(origin, line)
			}
		}

		rest := text[start+len(commentStart):]
		end := strings.Index(rest, commentEnd)
		if end < 0 {
			return nil, &ParseError{Line: line, Err: ErrUnterminatedComment}
		}
		line += strings.Count(rest[:end], "\n")
		text = rest[end+len(commentEnd):]
	}

	for _, c := range text {
		b.WriteRune(c)
		if c == '\n' {
			line++
			origin = append(origin, line)
		}
	}

	return &source{
		lines:  strings.Split(b.String(), "\n"),
		origin: origin,
	}, nil
}

// lineNumber returns the original line number of output line i.
func (s *source) lineNumber(i int) int {
	if i < len(s.origin) {
		return s.origin[i]
	}
	return s.origin[len(s.origin)-1]
}
