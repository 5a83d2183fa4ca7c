package varconf

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	integerPattern     = regexp.MustCompile(`^-?[0-9]+$`)
	namePattern        = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	placeholderPattern = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)
	wholePlaceholder   = regexp.MustCompile(`^\{([A-Za-z][A-Za-z0-9_]*)\}$`)
	templateToken      = regexp.MustCompile(`^(?:[A-Za-z0-9_]|\{[A-Za-z][A-Za-z0-9_]*\})+$`)
)

// IsName reports whether s is a valid constant, key or assignment name.
func IsName(s string) bool {
	return namePattern.MatchString(s)
}

func hasPlaceholder(s string) bool {
	return placeholderPattern.MatchString(s)
}

// parseScalar classifies a trimmed token. When refs is true, strings and
// bare tokens carrying {name} placeholders come back as pending values.
func parseScalar(token string, refs, lenient bool) (Value, error) {
	if integerPattern.MatchString(token) {
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, errorf(ErrInvalidScalar, token, "integer out of range")
		}
		return Integer(n), nil
	}

	switch strings.ToLower(token) {
	case "true":
		return Boolean(true), nil
	case "false":
		return Boolean(false), nil
	}

	if len(token) >= 2 && (token[0] == '"' || token[0] == '\'') && token[len(token)-1] == token[0] {
		text := token[1 : len(token)-1]
		if hasPlaceholder(text) {
			if !refs {
				return nil, errorf(ErrMalformedDeclaration, token, "constants cannot reference other constants")
			}
			return pending{text: text}, nil
		}
		return String(text), nil
	}

	if IsName(token) {
		return String(token), nil
	}

	if hasPlaceholder(token) && templateToken.MatchString(token) {
		if !refs {
			return nil, errorf(ErrMalformedDeclaration, token, "constants cannot reference other constants")
		}
		return pending{text: token}, nil
	}

	if lenient {
		return String(token), nil
	}
	return nil, newError(ErrInvalidScalar, token)
}
