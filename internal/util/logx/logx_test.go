package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	reset()
	SetLevel(Warn)
	defer SetLevel(Info)
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	lines := Lines()
	if len(lines) != 1 || !strings.Contains(lines[0], "WARN") || !strings.Contains(lines[0], "shown 2") {
		t.Fatalf("lines: %q", lines)
	}
}

func TestTailAndRing(t *testing.T) {
	reset()
	for i := 0; i < ringSize+5; i++ {
		Infof("line %d", i)
	}
	if n := len(Lines()); n != ringSize {
		t.Fatalf("ring size: %d", n)
	}
	tail := Tail(2)
	if len(tail) != 2 || !strings.HasSuffix(tail[1], "line 504") {
		t.Fatalf("tail: %q", tail)
	}
}

func TestSetOutput(t *testing.T) {
	reset()
	var b bytes.Buffer
	SetOutput(&b)
	defer SetOutput(nil)
	Errorf("boom")
	if !strings.Contains(b.String(), "ERROR boom") {
		t.Fatalf("output: %q", b.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": Debug, "INFO": Info, "warning": Warn, "error": Error}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("%s: %v %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error")
	}
}

func TestDumpAtDebug(t *testing.T) {
	reset()
	SetLevel(Debug)
	defer SetLevel(Info)
	if CurrentLevel() != Debug {
		t.Fatalf("level: %v", CurrentLevel())
	}
	Debugf("one")
	Infof("two")
	if d := Dump(); strings.Count(d, "\n") != 1 || !strings.Contains(d, "one") || !strings.HasSuffix(d, "two") {
		t.Fatalf("dump: %q", d)
	}
}
