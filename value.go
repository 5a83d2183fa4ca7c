package varconf

import "strings"

const (
	arraySigil  = "'("
	tablePrefix = "table("
)

// valueParser turns value tokens into Values, dispatching on the token's
// prefix to the array, table or scalar form.
type valueParser struct {
	maxDepth int
	refs     bool // recognise {name} placeholders
	lenient  bool
}

// parse parses token, which is nested inside depth composite literals.
func (vp *valueParser) parse(token string, depth int) (Value, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errorf(ErrInvalidScalar, "", "empty value")
	}

	switch {
	case strings.HasPrefix(token, arraySigil):
		return vp.parseArray(token, 1, depth)
	case strings.HasPrefix(token, "("):
		return vp.parseArray(token, 0, depth)
	case strings.HasPrefix(token, tablePrefix):
		return vp.parseTable(token, depth)
	}
	return parseScalar(token, vp.refs, vp.lenient)
}

func (vp *valueParser) enter(token string, depth int) error {
	if depth+1 > vp.maxDepth {
		return errorf(ErrNestingTooDeep, excerpt(token), "limit is %d", vp.maxDepth)
	}
	return nil
}

// parseArray parses '( a b c ) where token[open] is the opening paren.
func (vp *valueParser) parseArray(token string, open, depth int) (Value, error) {
	if err := vp.enter(token, depth); err != nil {
		return nil, err
	}

	end := matchClose(token, open)
	if end < 0 {
		return nil, errorf(ErrUnterminatedComposite, excerpt(token), "missing ')'")
	}
	if token[end] != ')' {
		return nil, errorf(ErrUnterminatedComposite, excerpt(token), "array closed by ']'")
	}
	if rest := strings.TrimSpace(token[end+1:]); rest != "" {
		return nil, errorf(ErrInvalidScalar, excerpt(rest), "unexpected text after array")
	}

	items := Array{}
	for _, item := range splitTopLevel(token[open+1:end], isSpace) {
		v, err := vp.parse(item, depth+1)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// parseTable parses table([ key = value, ... ]).
func (vp *valueParser) parseTable(token string, depth int) (Value, error) {
	if err := vp.enter(token, depth); err != nil {
		return nil, err
	}

	open := len(tablePrefix) - 1
	end := matchClose(token, open)
	if end < 0 {
		return nil, errorf(ErrUnterminatedComposite, excerpt(token), "missing ')'")
	}
	if token[end] != ')' {
		return nil, errorf(ErrUnterminatedComposite, excerpt(token), "table closed by ']'")
	}
	if rest := strings.TrimSpace(token[end+1:]); rest != "" {
		return nil, errorf(ErrInvalidScalar, excerpt(rest), "unexpected text after table")
	}

	inner := strings.TrimSpace(token[open+1 : end])
	if !strings.HasPrefix(inner, "[") {
		return nil, errorf(ErrInvalidScalar, excerpt(token), "expected '[' after table(")
	}
	rb := matchClose(inner, 0)
	if rb < 0 || inner[rb] != ']' {
		return nil, errorf(ErrUnterminatedComposite, excerpt(token), "missing ']'")
	}
	if rb != len(inner)-1 {
		return nil, errorf(ErrInvalidScalar, excerpt(inner[rb+1:]), "unexpected text in table")
	}

	table := NewTable()
	for _, entry := range splitTopLevel(inner[1:rb], isComma) {
		key, val, ok := cutUnquoted(entry, '=')
		if !ok {
			return nil, errorf(ErrInvalidName, excerpt(entry), "missing '=' in table entry")
		}
		key = strings.TrimSpace(key)
		if !IsName(key) {
			return nil, newError(ErrInvalidName, key)
		}
		v, err := vp.parse(val, depth+1)
		if err != nil {
			return nil, err
		}
		table.Set(key, v)
	}
	return table, nil
}

// excerpt shortens long tokens for error messages.
func excerpt(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
