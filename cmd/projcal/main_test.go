package main

import (
	"testing"

	"github.com/alecthomas/kong"
)

func TestCommandTree(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"debug", "db-path"}, "debug db-path"},
		{[]string{"project", "list"}, "project list"},
		{[]string{"keyring", "status"}, "keyring status"},
		{[]string{"task", "move", "p1", "t1", "t2", "--days", "2"}, "task move"},
	}

	parser, err := kong.New(&CLI, options()...)
	if err != nil {
		t.Fatalf("kong.New failed: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			ctx, err := parser.Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%v) failed: %v", tt.args, err)
			}
			if got := ctx.Selected().Path(); got != tt.want {
				t.Errorf("Selected().Path() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDebugFlagAndCommandCoexist(t *testing.T) {
	parser, err := kong.New(&CLI, options()...)
	if err != nil {
		t.Fatalf("kong.New failed: %v", err)
	}

	ctx, err := parser.Parse([]string{"--debug", "debug", "db-path"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !CLI.Debug {
		t.Error("--debug flag was not set")
	}
	if got := ctx.Selected().Path(); got != "debug db-path" {
		t.Errorf("Selected().Path() = %q, want %q", got, "debug db-path")
	}
}
