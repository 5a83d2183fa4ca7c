package varconf

// Equal reports whether a and b hold the same variant and contents. Table
// comparison ignores key order.
func Equal(a, b Value) bool {
	switch va := a.(type) {
	case Integer, Boolean, String:
		return a == b
	case Array:
		vb, ok := b.(Array)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i, v := range va {
			if !Equal(v, vb[i]) {
				return false
			}
		}
		return true
	case *Table:
		vb, ok := b.(*Table)
		if !ok || va.Len() != vb.Len() {
			return false
		}
		for k, v := range va.All() {
			other, ok := vb.Get(k)
			if !ok || !Equal(v, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone returns a deep copy of v. Scalars are returned as is.
func Clone(v Value) Value {
	switch v := v.(type) {
	case Array:
		out := make(Array, len(v))
		for i, item := range v {
			out[i] = Clone(item)
		}
		return out
	case *Table:
		out := NewTable()
		for k, item := range v.All() {
			out.Set(k, Clone(item))
		}
		return out
	default:
		return v
	}
}

// ToAny converts v into plain Go values: int64, bool, string, []any and
// map[string]any. Key order is lost.
func ToAny(v Value) any {
	switch v := v.(type) {
	case Integer:
		return int64(v)
	case Boolean:
		return bool(v)
	case String:
		return string(v)
	case Array:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = ToAny(item)
		}
		return out
	case *Table:
		out := make(map[string]any, v.Len())
		for k, item := range v.All() {
			out[k] = ToAny(item)
		}
		return out
	default:
		return nil
	}
}
