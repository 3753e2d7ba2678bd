package render

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)
	p.Start(120)
	for i := 0; i < 120; i++ {
		p.Step()
	}
	p.Finish()

	out := buf.String()
	if !strings.HasPrefix(out, "Rendering into image") {
		t.Errorf("missing banner: %q", out)
	}
	if !strings.Contains(out, "["+strings.Repeat("#", progressBarWidth)+"]") {
		t.Error("bar never reached full width")
	}
	if !strings.Contains(out, "100/100") {
		t.Error("missing final percentage")
	}
	// the bar is redrawn only when it grows, starting from empty
	if n := strings.Count(out, "\r"); n != progressBarWidth+1 {
		t.Errorf("bar redrawn %d times, want %d", n, progressBarWidth+1)
	}
	if !strings.HasSuffix(out, "Done.\n") {
		t.Errorf("missing footer: %q", out[len(out)-10:])
	}
}

func TestProgress_Spinner(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)
	p.Start(4)
	for i := 0; i < 4; i++ {
		p.Step()
	}
	frames := strings.Split(strings.TrimSuffix(buf.String()[strings.Index(buf.String(), "["):], "\r"), "\r")
	want := []string{"|", "\\", "-", "/"}
	if len(frames) != len(want) {
		t.Fatalf("got %d frames, want %d", len(frames), len(want))
	}
	for i, f := range frames {
		if !strings.Contains(f, "] "+want[(i+1)%4]+" ") {
			t.Errorf("frame %d = %q, want spinner %q", i, f, want[(i+1)%4])
		}
	}
}

func TestProgress_Nil(t *testing.T) {
	var p *Progress
	p.Start(3)
	p.Step()
	p.Finish()
}
