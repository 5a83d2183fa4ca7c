package varconf

import (
	"strings"
	"unicode"
)

type statementKind int

const (
	declaration statementKind = iota // var NAME value;
	assignment                       // name = value
)

// statement is one declaration or assignment with its value text joined
// onto a single line.
type statement struct {
	kind  statementKind
	name  string
	value string
	line  int
}

// splitStatements walks the comment-free source and cuts it into
// statements. Both kinds pull in following lines while brackets remain
// open. Declarations must end with an unquoted ';'; assignments end at
// one or at the end of the line.
func splitStatements(src *source) ([]statement, error) {
	var stmts []statement

	for i := 0; i < len(src.lines); i++ {
		rest := src.lines[i]
		for {
			rest = strings.TrimLeft(rest, " \t\r\v\f;")
			if strings.Trim(rest, " \t\r\v\f;,") == "" {
				break
			}
			line := src.lineNumber(i)

			var (
				stmt statement
				err  error
			)
			if isDeclaration(rest) {
				stmt, rest, i, err = readDeclaration(src, rest, i)
			} else {
				stmt, rest, i, err = readAssignment(src, rest, i)
			}
			if err != nil {
				return nil, atLine(err, line)
			}
			stmt.line = line
			stmts = append(stmts, stmt)
		}
	}
	return stmts, nil
}

// isDeclaration reports whether s starts with the var keyword. "var = 1"
// is an assignment to a key named var.
func isDeclaration(s string) bool {
	if s == "var" {
		return true
	}
	if !strings.HasPrefix(s, "var") || !isSpace(s[3]) {
		return false
	}
	return !strings.HasPrefix(strings.TrimSpace(s[3:]), "=")
}

// readDeclaration reads "var NAME value;" starting in text on line i. It
// returns the statement, whatever follows the ';' on the last line it
// consumed, and that line's index.
func readDeclaration(src *source, text string, i int) (statement, string, int, error) {
	acc := text[len("var"):]
	end, depth := scanStatement(acc)
	for end < 0 {
		if depth <= 0 || i+1 >= len(src.lines) {
			return statement{}, "", i, errorf(ErrMalformedDeclaration, excerpt(strings.TrimSpace(text)), "missing ';'")
		}
		i++
		acc += " " + src.lines[i]
		end, depth = scanStatement(acc)
	}

	body := strings.TrimSpace(acc[:end])
	rest := acc[end+1:]

	name, value := body, ""
	if j := strings.IndexFunc(body, unicode.IsSpace); j >= 0 {
		name, value = body[:j], strings.TrimSpace(body[j:])
	}

	if name == "" {
		return statement{}, "", i, errorf(ErrMalformedDeclaration, "var", "missing name")
	}
	if !IsName(name) {
		return statement{}, "", i, newError(ErrInvalidName, name)
	}
	if value == "" {
		return statement{}, "", i, errorf(ErrMalformedDeclaration, name, "missing value")
	}
	return statement{kind: declaration, name: name, value: value}, rest, i, nil
}

// readAssignment reads "name = value" starting in text on line i.
func readAssignment(src *source, text string, i int) (statement, string, int, error) {
	head, _, _ := cutUnquoted(text, ';')
	key, _, ok := cutUnquoted(head, '=')
	if !ok {
		return statement{}, "", i, errorf(ErrUnexpectedContent, excerpt(strings.TrimSpace(head)), "expected name = value")
	}
	value := text[len(key)+1:]
	key = strings.TrimSpace(key)
	if !IsName(key) {
		return statement{}, "", i, newError(ErrInvalidName, key)
	}

	acc := value
	rest := ""
	for {
		end, depth := scanStatement(acc)
		if end >= 0 {
			acc, rest = acc[:end], acc[end+1:]
			break
		}
		if depth <= 0 || i+1 >= len(src.lines) {
			break
		}
		i++
		acc += " " + src.lines[i]
	}

	return statement{kind: assignment, name: key, value: strings.TrimSpace(acc)}, rest, i, nil
}
