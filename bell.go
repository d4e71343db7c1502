package lineedit

import (
	"io"
	"sync"
	"time"
)

// Beeper renders the "nothing to do" feedback bound to Options' Beep*
// fields: either a terminal bell byte (grounded on petermattis-prompt's
// literal Ctrl-G write) or a colored flash animation, capped at
// BeepMaxDuration regardless of how many beeps arrive in a burst.
type Beeper struct {
	opts *Options
	out  io.Writer

	mu      sync.Mutex
	cancel  chan struct{}
	running bool
}

// NewBeeper builds a Beeper reading its animation parameters from opts and
// writing the plain BEL fallback to out.
func NewBeeper(opts *Options, out io.Writer) *Beeper {
	return &Beeper{opts: opts, out: out}
}

// Ring starts (or restarts) the beep animation. render is called with each
// successive color in Options.BeepColors, or "" to indicate the flash
// should be cleared; it runs on a background goroutine until Cancel is
// called or BeepMaxDuration elapses. Absent BeepBlink, it falls back to
// writing a literal bell byte, once, synchronously.
func (b *Beeper) Ring(render ...func(color string)) {
	b.Cancel()

	if b.opts == nil || len(b.opts.BeepColors) == 0 || !b.opts.BeepBlink {
		if b.out != nil {
			io.WriteString(b.out, "\a")
		}
		return
	}

	b.mu.Lock()
	cancel := make(chan struct{})
	b.cancel = cancel
	b.running = true
	b.mu.Unlock()

	var paint func(string)
	if len(render) > 0 {
		paint = render[0]
	}

	go func() {
		deadline := time.NewTimer(b.opts.BeepMaxDuration)
		defer deadline.Stop()
		ticker := time.NewTicker(b.opts.BeepDuration)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-cancel:
				if paint != nil {
					paint("")
				}
				return
			case <-deadline.C:
				if paint != nil {
					paint("")
				}
				return
			case <-ticker.C:
				if paint != nil {
					paint(b.opts.BeepColors[i%len(b.opts.BeepColors)])
				}
				i++
			}
		}
	}()
}

// Cancel stops any running beep animation immediately; it is always called
// at the start of a mode transition, per the "cancel beep" step of the
// Modal Interface's transition protocol.
func (b *Beeper) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		close(b.cancel)
		b.running = false
	}
}
