package render

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const progressBarWidth = 60

// Progress draws a text progress bar. Each render gets its own reporter; a
// nil *Progress reports nothing. It is safe for concurrent use.
type Progress struct {
	mu       sync.Mutex
	out      io.Writer
	total    int
	done     int
	dots     int
	rotation int
}

func NewProgress(out io.Writer) *Progress {
	return &Progress{out: out}
}

// Start resets the reporter for total units of work.
func (p *Progress) Start(total int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total, p.done, p.dots, p.rotation = total, 0, -1, 0
	fmt.Fprintln(p.out, "Rendering into image ... might take a while.")
}

// Step records one finished unit and redraws the bar when it grew.
func (p *Progress) Step() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if p.total <= 0 {
		return
	}
	done := min(p.done, p.total)
	dots := done * progressBarWidth / p.total
	if dots == p.dots {
		return
	}
	p.dots = dots
	p.rotation = (p.rotation + 1) % 4
	fmt.Fprintf(p.out, "[%s%s] %c %d/100\r",
		strings.Repeat("#", dots),
		strings.Repeat(" ", progressBarWidth-dots),
		`|\-/`[p.rotation],
		done*100/p.total)
}

// Finish ends the bar line.
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Done.")
}
