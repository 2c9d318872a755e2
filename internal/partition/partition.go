// Package partition implements group-scoped views over flat record collections.
//
// Checklist items, notes and attendance dates live in one collection per kind.
// Reads filter by group id; writes publish a group's full replacement set with
// Merge, which overwrites that group's whole segment. Two writers publishing
// from the same stale snapshot therefore resolve by last write wins.
package partition

// Record is a group-scoped record.
type Record interface {
	PartitionKey() string
	RecordID() string
}

// Filter returns the stable-order subsequence of all whose partition key is groupID.
// The result is never nil.
func Filter[T Record](groupID string, all []T) []T {
	out := make([]T, 0, len(all))
	for _, r := range all {
		if r.PartitionKey() == groupID {
			out = append(out, r)
		}
	}
	return out
}

// Merge returns all with every record of groupID removed, followed by replacement
// in the order supplied. Records of other groups keep their relative order.
func Merge[T Record](groupID string, all []T, replacement []T) []T {
	out := make([]T, 0, len(all)+len(replacement))
	for _, r := range all {
		if r.PartitionKey() != groupID {
			out = append(out, r)
		}
	}
	return append(out, replacement...)
}

// Index maps record ids back to their group. It is rebuilt from a loaded
// collection and not kept in sync afterwards.
type Index struct {
	byRecord map[string]string
}

// NewIndex builds an Index over all. When an id repeats, its first record wins.
func NewIndex[T Record](all []T) *Index {
	idx := &Index{byRecord: make(map[string]string, len(all))}
	for _, r := range all {
		if _, seen := idx.byRecord[r.RecordID()]; !seen {
			idx.byRecord[r.RecordID()] = r.PartitionKey()
		}
	}
	return idx
}

// GroupOf returns the group owning recordID.
func (i *Index) GroupOf(recordID string) (string, bool) {
	g, ok := i.byRecord[recordID]
	return g, ok
}
