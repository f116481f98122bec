package savedjob

// Action is the remote mutation implied by a toggle.
type Action string

const (
	// ActionSave bookmarks a job.
	ActionSave   Action = "save"
	ActionUnsave Action = "unsave"
)

// Set is a user's saved job ids (immutable value object). Each id appears once;
// insertion order is kept for display.
type Set struct {
	ids   []string
	index map[string]struct{}
}

// NewSet creates a Set, dropping empty and repeated ids.
func NewSet(ids ...string) Set {
	s := Set{ids: make([]string, 0, len(ids)), index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := s.index[id]; dup {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return s
}

// Contains reports whether id is saved.
func (s Set) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of saved ids.
func (s Set) Len() int { return len(s.ids) }

// IDs returns a copy of the saved ids in insertion order.
func (s Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// With returns a copy that contains id.
func (s Set) With(id string) Set {
	if id == "" || s.Contains(id) {
		return s
	}
	return NewSet(append(s.IDs(), id)...)
}

// Without returns a copy that does not contain id.
func (s Set) Without(id string) Set {
	if !s.Contains(id) {
		return s
	}
	kept := make([]string, 0, len(s.ids)-1)
	for _, v := range s.ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return NewSet(kept...)
}

// Toggle adds id when absent and removes it when present.
// It returns the new set and the remote action that makes it durable.
func Toggle(s Set, id string) (Set, Action) {
	if s.Contains(id) {
		return s.Without(id), ActionUnsave
	}
	return s.With(id), ActionSave
}

// Undo reverses action for id on s. Other ids are left alone.
func Undo(s Set, id string, action Action) Set {
	if action == ActionSave {
		return s.Without(id)
	}
	return s.With(id)
}
