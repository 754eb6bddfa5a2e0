package editor

import (
	"testing"
)

func TestCommand_UsesEnvironment(t *testing.T) {
	env := map[string]string{"EDITOR": "code --wait"}
	o := &Opener{getenv: func(k string) string { return env[k] }}

	cmd, err := o.Command("/tmp/graph.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"code", "--wait", "/tmp/graph.yaml"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("args = %v, want %v", cmd.Args, want)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, cmd.Args[i], want[i])
		}
	}
}

func TestCommand_VisualWins(t *testing.T) {
	env := map[string]string{"EDITOR": "nano", "VISUAL": "hx"}
	o := &Opener{getenv: func(k string) string { return env[k] }}

	cmd, err := o.Command("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Args[0] != "hx" {
		t.Errorf("expected hx, got %s", cmd.Args[0])
	}
}
