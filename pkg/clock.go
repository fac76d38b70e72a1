package pkg

import (
	"time"

	"github.com/qnkhuat/weetris/pkg/gui"
)

// Clock measures the playing time of one game. Pausing the game does not stop
// it; only the end of the game does.
type Clock struct {
	start   time.Time
	stop    time.Time
	running bool
}

func (cl *Clock) Start(now time.Time) {
	cl.start = now
	cl.stop = time.Time{}
	cl.running = true
}

func (cl *Clock) Stop(now time.Time) {
	if !cl.running {
		return
	}
	cl.stop = now
	cl.running = false
}

func (cl *Clock) Running() bool {
	return cl.running
}

// Elapsed returns the time since Start, frozen once the clock is stopped.
func (cl *Clock) Elapsed(now time.Time) time.Duration {
	switch {
	case cl.running:
		return now.Sub(cl.start)
	case cl.start.IsZero():
		return 0
	default:
		return cl.stop.Sub(cl.start)
	}
}

func (cl *Clock) Format(now time.Time) string {
	return gui.FormatElapsed(cl.Elapsed(now))
}
