package pkg

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/qnkhuat/weetris/pkg/event"
	"github.com/qnkhuat/weetris/pkg/tetris"
)

const ActionQueueSize = 10

// Frame is what the player hands to its draw callback after a change.
type Frame struct {
	Snapshot tetris.Snapshot
	Elapsed  time.Duration
}

// Player drives one session: it owns the gravity timer and the playing time
// clock, and applies actions from In one at a time.
type Player struct {
	Name    string
	Session *tetris.Session
	Clock   *Clock
	In      chan event.Action

	draw   func(Frame)
	logger *log.Logger
	now    func() time.Time
}

func NewPlayer(name string, session *tetris.Session, logger *log.Logger, draw func(Frame)) *Player {
	if logger == nil {
		logger = log.Default()
	}
	if draw == nil {
		draw = func(Frame) {}
	}

	return &Player{
		Name:    name,
		Session: session,
		Clock:   &Clock{},
		In:      make(chan event.Action, ActionQueueSize),
		draw:    draw,
		logger:  logger.With("player", name),
		now:     time.Now,
	}
}

// Frame returns the current state of the session.
func (p *Player) Frame() Frame {
	return Frame{
		Snapshot: p.Session.Snapshot(),
		Elapsed:  p.Clock.Elapsed(p.now()),
	}
}

// Handle applies one action to the session and reports whether anything
// changed. Close is not handled here; Run stops on it.
func (p *Player) Handle(a event.Action) bool {
	s := p.Session
	level := s.Level()

	if a.Game() && s.State() != tetris.Playing {
		p.logger.Debug("ignoring action", "action", a, "state", s.State())
		return false
	}

	var changed bool
	switch a {
	case event.ActionNewGame:
		s.NewGame()
		p.Clock.Start(p.now())
		p.logger.Info("new game")
		changed = true
	case event.ActionPause:
		changed = s.TogglePause()
	case event.ActionRotate:
		changed = s.Rotate()
	case event.ActionLeft:
		changed = s.MoveLeft()
	case event.ActionRight:
		changed = s.MoveRight()
	case event.ActionSoftDrop:
		changed = p.tick()
	case event.ActionHardDrop:
		changed = s.HardDrop()
	default:
		p.logger.Warn("unknown action", "action", a)
		return false
	}

	p.afterMove(level)
	return changed
}

// tick lowers the piece and reports whether the board changed, which is also
// the case when the piece landed.
func (p *Player) tick() bool {
	if p.Session.State() != tetris.Playing {
		return false
	}
	p.Session.Tick()
	return true
}

func (p *Player) afterMove(level int) {
	s := p.Session

	if s.Level() > level && s.State() == tetris.Playing {
		p.logger.Info("level up", "level", s.Level(), "lines", s.Lines())
	}

	if s.State() == tetris.Ended && p.Clock.Running() {
		p.Clock.Stop(p.now())
		p.logger.Info("game over", "lines", s.Lines(), "level", s.Level(), "time", p.Clock.Format(p.now()))
	}
}

// Run processes actions, gravity and the clock until ctx is done, In is
// closed or a close action arrives. A session that has not started yet is
// started first.
func (p *Player) Run(ctx context.Context) error {
	if p.Session.State() == tetris.NotStarted {
		p.Handle(event.ActionNewGame)
	}

	interval := p.Session.Interval()
	gravity := time.NewTicker(interval)
	defer gravity.Stop()
	gravityOn := true

	clock := time.NewTicker(time.Second)
	defer clock.Stop()

	p.draw(p.Frame())

	for {
		changed := false

		select {
		case <-ctx.Done():
			return ctx.Err()
		case a, ok := <-p.In:
			if !ok || a == event.ActionClose {
				p.logger.Info("closing")
				return nil
			}
			p.logger.Debug("action", "action", a)
			changed = p.Handle(a)
		case <-gravity.C:
			level := p.Session.Level()
			changed = p.tick()
			p.afterMove(level)
		case <-clock.C:
			changed = p.Clock.Running()
		}

		// Gravity stops with the game and restarts with the next one.
		ended := p.Session.State() == tetris.Ended
		switch {
		case ended && gravityOn:
			gravity.Stop()
			gravityOn = false
		case !ended && (!gravityOn || p.Session.Interval() != interval):
			interval = p.Session.Interval()
			gravity.Reset(interval)
			gravityOn = true
		}

		if changed {
			p.draw(p.Frame())
		}
	}
}
