package tetris

// Snapshot is everything a renderer needs after a state change.
type Snapshot struct {
	State State    `json:"state"`
	Board [][]Cell `json:"board"`

	Active      []Point `json:"active"`
	ActiveColor Cell    `json:"active_color"`

	Next      [4][4]Cell `json:"next"`
	NextColor Cell       `json:"next_color"`

	Level     int `json:"level"`
	Lines     int `json:"lines"`
	BestLevel int `json:"best_level"`
	BestLines int `json:"best_lines"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:       s.state,
		Board:       s.board.Rows(),
		ActiveColor: Empty,
		NextColor:   Empty,
		Level:       s.level,
		Lines:       s.lines,
		BestLevel:   s.bestLevel,
		BestLines:   s.bestLines,
	}

	if s.state == Playing || s.state == Paused {
		snap.ActiveColor = Cell(s.piece)
		for _, p := range s.form.Cells() {
			snap.Active = append(snap.Active, p.Add(Point{s.x, s.y}))
		}
	}

	if s.next >= 0 {
		snap.Next = Preview(s.next)
		snap.NextColor = Cell(s.next)
	} else {
		for y := range snap.Next {
			for x := range snap.Next[y] {
				snap.Next[y][x] = Empty
			}
		}
	}

	return snap
}

// Cell returns the board cell at (x, y) with the active piece drawn over it.
func (snap *Snapshot) Cell(x int, y int) Cell {
	for _, p := range snap.Active {
		if p.X == x && p.Y == y {
			return snap.ActiveColor
		}
	}
	return snap.Board[y][x]
}
