package varconf

import (
	"errors"
	"fmt"
)

// Errors reported by the parser. Every failure returned by Parse wraps one
// of these in a *ParseError.
var (
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidScalar         = errors.New("invalid scalar")
	ErrUnterminatedComposite = errors.New("unterminated composite literal")
	ErrUnterminatedComment   = errors.New("unterminated comment")
	ErrUnknownConstant       = errors.New("unknown constant")
	ErrConstantNotScalar     = errors.New("constant is not a scalar")
	ErrNestingTooDeep        = errors.New("nesting too deep")
	ErrMalformedDeclaration  = errors.New("malformed declaration")
	ErrUnexpectedContent     = errors.New("unexpected content")
)

// ParseError describes where parsing failed.
type ParseError struct {
	Line  int    // 1-based line in the original input, 0 if unknown
	Token string // offending text, may be empty
	Err   error
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Token != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Token)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newError(err error, token string) *ParseError {
	return &ParseError{Token: token, Err: err}
}

// errorf wraps kind with a detail message.
func errorf(kind error, token, format string, args ...any) *ParseError {
	return &ParseError{
		Token: token,
		Err:   fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}

// atLine fills in the line of err if it is a *ParseError without one.
func atLine(err error, line int) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Line == 0 {
		pe.Line = line
	}
	return err
}
