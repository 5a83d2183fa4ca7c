package varconf

// MergeStrategy controls how tables present in both documents combine.
type MergeStrategy string

// ListStrategy controls how arrays present in both documents combine.
type ListStrategy string

const (
	MergeDeep    MergeStrategy = "deep"    // merge tables key by key
	MergeReplace MergeStrategy = "replace" // overlay value wins

	ListReplace ListStrategy = "replace" // overlay array wins
	ListAppend  ListStrategy = "append"  // base items, then overlay items
	ListUnique  ListStrategy = "unique"  // append, dropping repeated items
)

// MergeOptions configures Merge. The zero value merges tables deeply and
// replaces arrays.
type MergeOptions struct {
	Strategy MergeStrategy
	Lists    ListStrategy
}

// Merge combines two documents, overlay taking precedence. Keys keep the
// base order; keys only in overlay follow in overlay order. Neither input
// is modified.
func Merge(base, overlay *Document, opts MergeOptions) *Document {
	result := NewDocument()
	merged := mergeTables(&base.Table, &overlay.Table, opts)
	for key, v := range merged.All() {
		result.Set(key, v)
	}
	return result
}

func mergeTables(base, overlay *Table, opts MergeOptions) *Table {
	result := NewTable()
	for key, v := range base.All() {
		result.Set(key, Clone(v))
	}
	for key, v := range overlay.All() {
		if existing, ok := result.Get(key); ok {
			result.Set(key, mergeValues(existing, v, opts))
		} else {
			result.Set(key, Clone(v))
		}
	}
	return result
}

// mergeValues merges two values according to the merge options
func mergeValues(base, overlay Value, opts MergeOptions) Value {
	if overlay == nil {
		return base
	}

	if opts.Strategy == MergeReplace {
		return Clone(overlay)
	}

	baseTable, baseIsTable := base.(*Table)
	overlayTable, overlayIsTable := overlay.(*Table)
	if baseIsTable && overlayIsTable {
		return mergeTables(baseTable, overlayTable, opts)
	}

	baseList, baseIsList := base.(Array)
	overlayList, overlayIsList := overlay.(Array)
	if baseIsList && overlayIsList {
		switch opts.Lists {
		case ListAppend:
			return Clone(append(append(Array{}, baseList...), overlayList...))
		case ListUnique:
			return uniqueList(Clone(append(append(Array{}, baseList...), overlayList...)).(Array))
		default:
			return Clone(overlayList)
		}
	}

	// Type mismatch or scalars: overlay wins
	return Clone(overlay)
}

// uniqueList drops items Equal to an earlier item
func uniqueList(list Array) Array {
	result := Array{}
	for _, item := range list {
		seen := false
		for _, kept := range result {
			if Equal(item, kept) {
				seen = true
				break
			}
		}
		if !seen {
			result = append(result, item)
		}
	}
	return result
}
