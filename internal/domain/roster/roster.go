// Package roster maintains ordered, duplicate-free membership lists.
package roster

// Roster tracks the members of a single activity. Membership checks are
// O(1) via the index map while the slice preserves signup order. A Roster
// is not safe for concurrent use; callers hold their own lock.
type Roster struct {
	index   map[string]struct{}
	members []string
}

// New creates a roster from the given members, keeping the first occurrence
// of any duplicate and preserving order.
func New(members ...string) *Roster {
	r := &Roster{
		index:   make(map[string]struct{}, len(members)),
		members: make([]string, 0, len(members)),
	}
	for _, m := range members {
		r.Add(m)
	}
	return r
}

// Add appends member to the roster. It returns false when the member is
// already present, leaving the roster unchanged.
func (r *Roster) Add(member string) bool {
	if _, exists := r.index[member]; exists {
		return false
	}
	r.index[member] = struct{}{}
	r.members = append(r.members, member)
	return true
}

// Remove deletes member from the roster, closing the gap so the relative
// order of the remaining members is preserved. It returns false when the
// member is not present.
func (r *Roster) Remove(member string) bool {
	if _, exists := r.index[member]; !exists {
		return false
	}
	delete(r.index, member)
	for i, m := range r.members {
		if m == member {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether member is on the roster.
func (r *Roster) Has(member string) bool {
	_, exists := r.index[member]
	return exists
}

// Members returns a copy of the roster in signup order. The copy is never
// nil, so it serializes as an empty list.
func (r *Roster) Members() []string {
	out := make([]string, len(r.members))
	copy(out, r.members)
	return out
}

// Len returns the number of members on the roster.
func (r *Roster) Len() int {
	return len(r.members)
}
