package port

import (
	"context"
	"testing"
	"time"
)

func TestExecSourceStreamsLines(t *testing.T) {
	src := &ExecSource{Command: "sh", Args: []string{"-c", "echo one; echo; echo two"}}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fragments, err := src.Start(ctx)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var got []string
	for f := range fragments {
		got = append(got, f)
	}

	// Blank lines are dropped.
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("got fragments %v, want [one two]", got)
	}
}

func TestExecSourceCancellation(t *testing.T) {
	src := &ExecSource{Command: "sh", Args: []string{"-c", "while true; do echo tick; sleep 0.05; done"}}

	ctx, cancel := context.WithCancel(context.Background())
	fragments, err := src.Start(ctx)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Read one fragment, then stop the capture.
	select {
	case <-fragments:
	case <-time.After(5 * time.Second):
		t.Fatal("no fragment before timeout")
	}
	cancel()

	select {
	case _, open := <-fragments:
		for open {
			select {
			case _, open = <-fragments:
			case <-time.After(5 * time.Second):
				t.Fatal("stream did not close after cancel")
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not close after cancel")
	}
}

func TestExecSourceRequiresCommand(t *testing.T) {
	src := &ExecSource{}
	if _, err := src.Start(context.Background()); err == nil {
		t.Error("Start without a command should fail")
	}
}
