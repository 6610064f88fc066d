package view

import (
	"bytes"
	"lifeclock/src/universe"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/log"
)

func TestFieldTextRowMajor(t *testing.T) {
	g := universe.FromCoordinates([][2]int{{0, 0}, {universe.Cols - 1, 1}})
	lines := strings.Split(fieldText(&g, 100, 100, "#", "."), "\n")
	if len(lines) != universe.Rows {
		t.Fatalf("%d lines, want %d", len(lines), universe.Rows)
	}
	for y, l := range lines {
		if len(l) != universe.Cols {
			t.Fatalf("line %d has %d cells", y, len(l))
		}
	}
	if lines[0] != "#"+strings.Repeat(".", universe.Cols-1) {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if lines[1] != strings.Repeat(".", universe.Cols-1)+"#" {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestFieldTextCrop(t *testing.T) {
	var g universe.Grid
	text := fieldText(&g, 10, 5, "#", ".")
	lines := strings.Split(text, "\n")
	if len(lines) != 5 {
		t.Fatalf("%d lines, want 5", len(lines))
	}
	if lines[0] != ".........." {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[4], "larger than the viewing area") {
		t.Fatalf("no crop warning in %q", lines[4])
	}
}

func TestFieldTextCropNarrowView(t *testing.T) {
	var g universe.Grid
	lines := strings.Split(fieldText(&g, 10, 100, "#", "."), "\n")
	if len(lines) != universe.Rows {
		t.Fatalf("%d lines, want %d", len(lines), universe.Rows)
	}
	if lines[0] != ".........." {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[universe.Rows-1], "larger than the viewing area") {
		t.Fatalf("no crop warning in %q", lines[universe.Rows-1])
	}
}

func TestFieldTextFitsWithoutWarning(t *testing.T) {
	var g universe.Grid
	if text := fieldText(&g, universe.Cols, universe.Rows, "#", "."); strings.Contains(text, "larger") {
		t.Fatal("crop warning for the view of exact size")
	}
}

func TestScreenLayout(t *testing.T) {
	if _, ok := screenLayout(20, 40); ok {
		t.Fatal("narrow terminal accepted")
	}
	if _, ok := screenLayout(120, 10); ok {
		t.Fatal("low terminal accepted")
	}

	views, ok := screenLayout(200, 60)
	if !ok {
		t.Fatal("large terminal rejected")
	}
	f := views[fieldView]
	//the inner area of the framed view is x1-x0-1 wide
	if w, h := f.x1-f.x0-1, f.y1-f.y0-1; w != universe.Cols || h != universe.Rows {
		t.Fatalf("field view is %dx%d, want %dx%d", w, h, universe.Cols, universe.Rows)
	}
	if c, s := views[configView], views[statusView]; c.y1 >= s.y0 {
		t.Fatalf("configuration %v overlaps status %v", c, s)
	}

	views, _ = screenLayout(60, 30)
	if f := views[fieldView]; f.x1 != 59 || f.y1 >= views[keysView].y0 {
		t.Fatalf("field view %v is not clipped to the terminal", f)
	}
}

func TestHeaderText(t *testing.T) {
	st := universe.Status{Generation: 12, RunningMode: universe.RunningStateRunning, Interval: 250 * time.Millisecond}
	text := headerText(st, 100)
	for _, s := range []string{"50x32", "running", "250ms", "generation 12"} {
		if !strings.Contains(text, s) {
			t.Errorf("header %q misses %q", text, s)
		}
	}
	if !strings.HasPrefix(text, " ") {
		t.Errorf("header %q is not centered", text)
	}
	if got := headerText(st, 8); got != "The Life" {
		t.Errorf("narrow header %q", got)
	}
	if got := headerText(st, -1); got != "" {
		t.Errorf("header for no space %q", got)
	}
}

func TestTransitionDuration(t *testing.T) {
	tests := []struct {
		interval time.Duration
		want     time.Duration
	}{
		{time.Second, 750 * time.Millisecond},
		{500 * time.Millisecond, 375 * time.Millisecond},
		{250 * time.Millisecond, 187 * time.Millisecond},
		{400 * time.Millisecond, 300 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := transitionDuration(tt.interval); got != tt.want {
			t.Errorf("transitionDuration(%v) = %v, want %v", tt.interval, got, tt.want)
		}
	}
}

func TestKeysTextListsBindings(t *testing.T) {
	text := keysText([]keyBindings{{name: "SPACE", descr: "Pause/Resume"}, {name: "R", descr: "Reseed"}})
	for _, s := range []string{"SPACE", "Pause/Resume", "R", "Reseed"} {
		if !strings.Contains(text, s) {
			t.Errorf("help text %q misses %q", text, s)
		}
	}
}

func TestConsoleOutLogsProgress(t *testing.T) {
	o := universe.DefaultUniverseOptions
	o.RunOnStart = false
	o.Interval = time.Hour
	u := universe.NewLifeUniverse(&o, nil)
	defer u.Close()

	var buf bytes.Buffer
	c := NewConsoleOut(log.NewLogfmtLogger(&buf), 10)
	c.Register(u)
	c.Start()
	c.Refresh()

	out := buf.String()
	for _, s := range []string{"msg=configuration", "dimension=50x32", "engine=serial", `msg="simulation started"`} {
		if !strings.Contains(out, s) {
			t.Errorf("output %q misses %q", out, s)
		}
	}
	//the stopped universe doesn't log progress
	if strings.Contains(out, "msg=progress") {
		t.Errorf("unexpected progress in %q", out)
	}
}
