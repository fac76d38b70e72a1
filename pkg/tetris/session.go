package tetris

import "time"

type State int

const (
	NotStarted State = iota
	Playing
	Paused
	Ended
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Ended:
		return "Ended"
	default:
		return "Unknown"
	}
}

const (
	MaxLevel      = 10
	LinesPerLevel = 10
)

// BestStore holds the best level and line count across sessions. Best is read
// once when the session is created; RecordBest is called every time either
// value is beaten.
type BestStore interface {
	Best() (level int, lines int)
	RecordBest(level int, lines int)
}

// Session is one game on one board. It is not safe for concurrent use: the
// owner delivers events one at a time.
type Session struct {
	board *Board
	rand  Randomizer
	store BestStore

	state State
	level int
	lines int

	piece int
	form  Form
	x, y  int
	next  int

	bestLevel int
	bestLines int
}

func NewSession(r Randomizer, store BestStore) *Session {
	s := &Session{
		board:     NewBoard(Width, Height),
		rand:      r,
		store:     store,
		level:     1,
		next:      -1,
		bestLevel: 1,
	}

	if store != nil {
		level, lines := store.Best()
		if level > s.bestLevel {
			s.bestLevel = level
		}
		s.bestLines = lines
	}

	return s
}

func (s *Session) State() State     { return s.state }
func (s *Session) Level() int       { return s.level }
func (s *Session) Lines() int       { return s.lines }
func (s *Session) Board() *Board    { return s.board }
func (s *Session) Best() (int, int) { return s.bestLevel, s.bestLines }

// Position returns the anchor of the active piece.
func (s *Session) Position() Point { return Point{s.x, s.y} }

func (s *Session) Form() Form     { return s.form }
func (s *Session) Piece() int     { return s.piece }
func (s *Session) NextPiece() int { return s.next }

// Interval returns the gravity period for the current level.
func (s *Session) Interval() time.Duration {
	return Interval(s.level)
}

// Interval shortens by 60ms per level down to a floor of 100ms.
func Interval(level int) time.Duration {
	ms := 700 - (level-1)*60
	if ms < 100 {
		ms = 100
	}
	return time.Duration(ms) * time.Millisecond
}

// SpawnPoint is where every new piece starts: horizontally centered on the
// top row.
func (s *Session) SpawnPoint() Point {
	return Point{s.board.W/2 - 2, 0}
}

// NewGame starts over from any state.
func (s *Session) NewGame() {
	s.board.Clear()
	s.level = 1
	s.lines = 0
	s.next = -1
	s.state = Playing

	if !s.promote() {
		s.end()
	}
}

// TogglePause switches between Playing and Paused. It does nothing in other
// states.
func (s *Session) TogglePause() bool {
	switch s.state {
	case Playing:
		s.state = Paused
	case Paused:
		s.state = Playing
	default:
		return false
	}
	return true
}

// Tick lowers the active piece one row, or lands it when it is blocked. It
// returns true only when the piece moved.
func (s *Session) Tick() bool {
	if s.state != Playing {
		return false
	}

	if s.board.CanPlace(s.x, s.y+1, s.form) {
		s.y++
		return true
	}

	s.land()
	return false
}

func (s *Session) SoftDrop() bool {
	return s.Tick()
}

// HardDrop lowers the active piece as far as it goes and lands it.
func (s *Session) HardDrop() bool {
	if s.state != Playing {
		return false
	}

	for s.board.CanPlace(s.x, s.y+1, s.form) {
		s.y++
	}

	s.land()
	return true
}

func (s *Session) MoveLeft() bool {
	return s.move(-1)
}

func (s *Session) MoveRight() bool {
	return s.move(1)
}

func (s *Session) move(dx int) bool {
	if s.state != Playing || !s.board.CanPlace(s.x+dx, s.y, s.form) {
		return false
	}

	s.x += dx
	return true
}

// Rotate turns the active piece in place. A rotation that would overlap or
// leave the board is rejected; no offsets are tried.
func (s *Session) Rotate() bool {
	if s.state != Playing {
		return false
	}

	f := Rotate(s.form)
	if !s.board.CanPlace(s.x, s.y, f) {
		return false
	}

	s.form = f
	return true
}

func (s *Session) land() {
	s.board.Merge(s.x, s.y, s.form, Cell(s.piece))

	if cleared := s.board.ClearFullRows(); cleared > 0 {
		s.addLines(cleared)
	}

	if !s.promote() {
		s.end()
	}
}

func (s *Session) addLines(n int) {
	s.lines += n

	improved := false
	if s.lines > s.bestLines {
		s.bestLines = s.lines
		improved = true
	}

	level := s.lines/LinesPerLevel + 1
	if level > MaxLevel {
		level = MaxLevel
	}
	if level > s.level {
		s.level = level
		if s.level > s.bestLevel {
			s.bestLevel = s.level
			improved = true
		}
	}

	if improved && s.store != nil {
		s.store.RecordBest(s.bestLevel, s.bestLines)
	}
}

// promote makes the next piece active at the spawn point and draws a new next
// piece. It returns false when the new piece does not fit.
func (s *Session) promote() bool {
	if s.next < 0 {
		s.next = randomPiece(s.rand)
	}

	s.piece = s.next
	s.next = randomPiece(s.rand)
	s.form = ShapeFor(s.piece)

	sp := s.SpawnPoint()
	s.x, s.y = sp.X, sp.Y

	return s.board.CanPlace(s.x, s.y, s.form)
}

func (s *Session) end() {
	s.state = Ended
	s.form = 0
}
