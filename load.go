package varconf

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Loader reads documents from files, decoding them from a text encoding
// before parsing.
type Loader struct {
	parser   *Parser
	encoding encoding.Encoding
	merge    MergeOptions
}

// NewLoader creates a Loader that parses with p and reads UTF-8 text.
// A nil p uses NewParser().
func NewLoader(p *Parser) *Loader {
	if p == nil {
		p = NewParser()
	}
	return &Loader{
		parser:   p,
		encoding: unicode.UTF8,
	}
}

// WithEncoding configures the text encoding of input files by its WHATWG
// label, such as "utf-8", "windows-1251" or "koi8-r".
func (l *Loader) WithEncoding(name string) (*Loader, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	l.encoding = enc
	return l, nil
}

// WithMerge configures how LoadFiles combines documents.
func (l *Loader) WithMerge(opts MergeOptions) *Loader {
	l.merge = opts
	return l
}

// Load decodes r and parses the result.
func (l *Loader) Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(transform.NewReader(r, l.encoding.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	return l.parser.Parse(string(data))
}

// LoadFile reads and parses the file at path.
func (l *Loader) LoadFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	doc, err := l.Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadFiles loads every path and merges the documents in order, so later
// files override earlier ones.
func (l *Loader) LoadFiles(paths ...string) (*Document, error) {
	if len(paths) == 0 {
		return nil, errors.New("no input files")
	}

	result, err := l.LoadFile(paths[0])
	if err != nil {
		return nil, err
	}
	for _, path := range paths[1:] {
		overlay, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		result = Merge(result, overlay, l.merge)
	}
	return result, nil
}
