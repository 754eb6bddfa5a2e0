package views

// ViewState holds the cell size a view renders into
type ViewState struct {
	Width  int
	Height int
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// StatusLine is the one-line report under the map. An error stays until
// the next report replaces it.
type StatusLine struct {
	Text  string
	IsErr bool
}

// Info reports a completed action
func (s *StatusLine) Info(text string) {
	s.Text, s.IsErr = text, false
}

// Fail reports err, prefixed with what was being attempted
func (s *StatusLine) Fail(prefix string, err error) {
	s.Text, s.IsErr = err.Error(), true
	if prefix != "" {
		s.Text = prefix + ": " + s.Text
	}
}

// Warn reports a problem that has no underlying error
func (s *StatusLine) Warn(text string) {
	s.Text, s.IsErr = text, true
}

// Clear empties the line
func (s *StatusLine) Clear() {
	s.Text, s.IsErr = "", false
}

// View renders the line, or "" when empty
func (s StatusLine) View() string {
	return RenderMessage(s.Text, s.IsErr)
}
