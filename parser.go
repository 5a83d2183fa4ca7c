// Package varconf parses varconf configuration documents.
//
// A document is a sequence of constant declarations and assignments:
//
//	<# block comment #>
//	var port 8080;
//	name = "service"
//	listen = table([host = localhost, port = {port}])
//	tags = '(alpha beta
//	         gamma)
//
// Parsing yields a Document: an ordered table of the assigned names.
package varconf

import (
	"fmt"
	"io"
)

// DefaultMaxDepth is the default limit on nested array and table literals.
const DefaultMaxDepth = 64

// Parser holds parsing options. A Parser is safe for concurrent use; each
// call to Parse works on its own constant registry.
type Parser struct {
	maxDepth int
	lenient  bool
}

// NewParser creates a new Parser with default configuration.
func NewParser() *Parser {
	return &Parser{maxDepth: DefaultMaxDepth}
}

// WithMaxDepth configures how deeply composite literals may nest.
func (p *Parser) WithMaxDepth(n int) *Parser {
	p.maxDepth = n
	return p
}

// WithLenient configures lenient parsing: unrecognised scalar tokens become
// strings and placeholders naming unknown constants are kept as text.
func (p *Parser) WithLenient(lenient bool) *Parser {
	p.lenient = lenient
	return p
}

// Parse parses a complete document. On error no partial Document is
// returned; the error is a *ParseError wrapping one of the Err* values.
func (p *Parser) Parse(text string) (*Document, error) {
	src, err := stripComments(text)
	if err != nil {
		return nil, err
	}

	stmts, err := splitStatements(src)
	if err != nil {
		return nil, err
	}

	consts, err := collectConstants(stmts, &valueParser{maxDepth: p.maxDepth, lenient: p.lenient})
	if err != nil {
		return nil, err
	}

	values := &valueParser{maxDepth: p.maxDepth, refs: true, lenient: p.lenient}
	res := &resolver{consts: consts, lenient: p.lenient}

	doc := NewDocument()
	for _, stmt := range stmts {
		if stmt.kind != assignment {
			continue
		}
		v, err := values.parse(stmt.value, 0)
		if err != nil {
			return nil, atLine(err, stmt.line)
		}
		v, err = res.resolve(v)
		if err != nil {
			return nil, atLine(err, stmt.line)
		}
		doc.Set(stmt.name, v)
	}
	return doc, nil
}

// ParseDocument reads r to the end and parses its contents.
func (p *Parser) ParseDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return p.Parse(string(data))
}

// Parse parses text with the default configuration.
func Parse(text string) (*Document, error) {
	return NewParser().Parse(text)
}
