package varconf

import "strings"

// scanState tracks quoting and bracket depth while walking source text
// byte by byte. (, ), [ and ] all share one depth counter.
type scanState struct {
	quote byte
	depth int
}

// feed advances the state past s[i] and reports whether that byte lies
// outside a quoted string. A ' directly followed by ( is the array sigil,
// not a quote.
func (st *scanState) feed(s string, i int) bool {
	c := s[i]
	if st.quote != 0 {
		if c == st.quote {
			st.quote = 0
		}
		return false
	}
	switch c {
	case '"':
		st.quote = c
		return false
	case '\'':
		if i+1 < len(s) && s[i+1] == '(' {
			return true
		}
		st.quote = c
		return false
	case '(', '[':
		st.depth++
	case ')', ']':
		st.depth--
	}
	return true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isComma(c byte) bool {
	return c == ','
}

// splitTopLevel splits s at delimiter bytes that are outside quotes and at
// bracket depth zero. Segments are trimmed; empty ones are dropped.
func splitTopLevel(s string, isDelim func(byte) bool) []string {
	var (
		parts []string
		st    scanState
		start int
	)
	emit := func(end int) {
		if part := strings.TrimSpace(s[start:end]); part != "" {
			parts = append(parts, part)
		}
	}
	for i := 0; i < len(s); i++ {
		if st.feed(s, i) && st.depth == 0 && isDelim(s[i]) {
			emit(i)
			start = i + 1
		}
	}
	emit(len(s))
	return parts
}

// matchClose returns the index of the bracket closing the one at s[open],
// or -1 if it is never closed.
func matchClose(s string, open int) int {
	st := scanState{depth: 1}
	for i := open + 1; i < len(s); i++ {
		if !st.feed(s, i) {
			continue
		}
		if (s[i] == ')' || s[i] == ']') && st.depth == 0 {
			return i
		}
	}
	return -1
}

// cutUnquoted slices s around the first sep found outside quotes.
func cutUnquoted(s string, sep byte) (before, after string, found bool) {
	var st scanState
	for i := 0; i < len(s); i++ {
		if st.feed(s, i) && s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// scanStatement looks for a ; terminating a statement in s. It returns the
// terminator index (or -1) and the bracket depth reached at the end of s.
func scanStatement(s string) (end, depth int) {
	var st scanState
	for i := 0; i < len(s); i++ {
		if st.feed(s, i) && s[i] == ';' && st.depth == 0 {
			return i, 0
		}
	}
	return -1, st.depth
}
