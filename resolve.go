package varconf

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// resolver replaces placeholders in a parsed value with registered
// constants. A value that is exactly one placeholder takes the constant's
// value and type; placeholders inside longer text are replaced with the
// constant's printed form.
type resolver struct {
	consts  *Registry
	lenient bool
}

func (r *resolver) resolve(v Value) (Value, error) {
	switch v := v.(type) {
	case pending:
		return r.resolveText(v.text)
	case Array:
		out := make(Array, len(v))
		for i, item := range v {
			resolved, err := r.resolve(item)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case *Table:
		out := NewTable()
		for key, item := range v.All() {
			resolved, err := r.resolve(item)
			if err != nil {
				return nil, err
			}
			out.Set(key, resolved)
		}
		return out, nil
	default:
		return v, nil
	}
}

func (r *resolver) resolveText(text string) (Value, error) {
	if m := wholePlaceholder.FindStringSubmatch(text); m != nil {
		c, ok := r.consts.Lookup(m[1])
		if !ok {
			if r.lenient {
				return String(text), nil
			}
			return nil, r.unknown(m[1])
		}
		return Clone(c), nil
	}

	var err error
	out := placeholderPattern.ReplaceAllStringFunc(text, func(ph string) string {
		if err != nil {
			return ph
		}
		name := ph[1 : len(ph)-1]
		c, ok := r.consts.Lookup(name)
		if !ok {
			if !r.lenient {
				err = r.unknown(name)
			}
			return ph
		}
		s, printable := Printed(c)
		if !printable {
			err = errorf(ErrConstantNotScalar, name, "%s constant cannot be embedded in text", c.Kind())
			return ph
		}
		return s
	})
	if err != nil {
		return nil, err
	}
	return String(out), nil
}

func (r *resolver) unknown(name string) error {
	if suggestion := closestName(name, r.consts.Names()); suggestion != "" {
		return errorf(ErrUnknownConstant, name, "did you mean %q?", suggestion)
	}
	return newError(ErrUnknownConstant, name)
}

// closestName picks the registered name most similar to name.
func closestName(name string, names []string) string {
	if len(names) == 0 {
		return ""
	}
	if ranks := fuzzy.RankFindFold(name, names); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", 3
	for _, candidate := range names {
		if d := fuzzy.LevenshteinDistance(name, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

// Printed returns the text form of a scalar value as it is spliced into
// strings. The second result is false for arrays and tables.
func Printed(v Value) (string, bool) {
	switch v := v.(type) {
	case Integer:
		return fmt.Sprintf("%d", int64(v)), true
	case Boolean:
		if v {
			return "true", true
		}
		return "false", true
	case String:
		return string(v), true
	default:
		return "", false
	}
}
