package views

import "testing"

func TestDismissStack_LastInFirstOut(t *testing.T) {
	var s DismissStack
	var closed []string

	s.Push("panel", func() { closed = append(closed, "panel") })
	s.Push("tooltip", func() { closed = append(closed, "tooltip") })

	if got := s.Top(); got != "tooltip" {
		t.Fatalf("Top() = %q, want tooltip", got)
	}
	if got := s.Dismiss(); got != "tooltip" {
		t.Errorf("Dismiss() = %q, want tooltip", got)
	}
	if got := s.Dismiss(); got != "panel" {
		t.Errorf("Dismiss() = %q, want panel", got)
	}
	if got := s.Dismiss(); got != "" {
		t.Errorf("Dismiss() on empty stack = %q", got)
	}
	if len(closed) != 2 || closed[0] != "tooltip" || closed[1] != "panel" {
		t.Errorf("closed = %v", closed)
	}
}

func TestDismissStack_UnsubscribeSkipsClose(t *testing.T) {
	var s DismissStack
	called := false

	unsubscribe := s.Push("search", func() { called = true })
	s.Push("help", nil)

	unsubscribe()
	unsubscribe()

	if s.Len() != 1 || s.Top() != "help" {
		t.Fatalf("expected only help left, got %d entries, top %q", s.Len(), s.Top())
	}
	s.Dismiss()
	if called {
		t.Error("unsubscribed overlay must not be closed")
	}
}
