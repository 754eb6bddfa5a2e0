package views

// DismissStack tracks open overlays so Esc closes the most recent one.
// Each entry is removed either by Dismiss or by the unsubscribe function
// returned from Push, whichever happens first.
type DismissStack struct {
	entries []dismissEntry
	nextID  int
}

type dismissEntry struct {
	id    int
	name  string
	close func()
}

// Push registers an overlay. The returned function removes it without
// calling close.
func (s *DismissStack) Push(name string, close func()) func() {
	id := s.nextID
	s.nextID++
	s.entries = append(s.entries, dismissEntry{id: id, name: name, close: close})

	return func() {
		for i, e := range s.entries {
			if e.id == id {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				return
			}
		}
	}
}

// Dismiss closes the top overlay. It returns its name, or "" when
// nothing was open.
func (s *DismissStack) Dismiss() string {
	if len(s.entries) == 0 {
		return ""
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	if top.close != nil {
		top.close()
	}
	return top.name
}

// Top returns the name of the top overlay, or ""
func (s *DismissStack) Top() string {
	if len(s.entries) == 0 {
		return ""
	}
	return s.entries[len(s.entries)-1].name
}

// Len returns the number of open overlays
func (s *DismissStack) Len() int {
	return len(s.entries)
}
