package views

import (
	"strings"
	"testing"

	"knowmap/internal/domain"
)

func TestRenderTooltip(t *testing.T) {
	if got := RenderTooltip(nil); got != "" {
		t.Errorf("nil node rendered %q", got)
	}

	n := domain.SeedNodes()[3]
	got := RenderTooltip(&n)
	for _, want := range []string{"Data Security Protocols", "Policy", "importance 92", "#Security"} {
		if !strings.Contains(got, want) {
			t.Errorf("tooltip missing %q:\n%s", want, got)
		}
	}
}
