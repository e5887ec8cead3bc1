package core

// MoveResult describes what a single relocation did to the board
type MoveResult struct {
	From     Coordinate
	To       Coordinate
	Mover    Unit
	Captured Unit
	Capture  bool
	Promoted bool
}

// CapturedAttackerPawn reports whether the move removed an attacker pawn
func (r MoveResult) CapturedAttackerPawn() bool {
	return r.Capture && r.Captured.Is(Attacker, Pawn)
}

// ApplyMove relocates the unit on from to to, capturing anything on the destination.
// Defender pawns reaching the attacker back rank promote to a rook.
// Returns false when from is empty or either square is off the board.
func ApplyMove(b *Board, from, to Coordinate) (MoveResult, bool) {
	if !from.IsValid() || !to.IsValid() || from == to {
		return MoveResult{}, false
	}
	mover, ok := b.At(from)
	if !ok {
		return MoveResult{}, false
	}

	res := MoveResult{From: from, To: to, Mover: mover}
	if captured, occupied := b.At(to); occupied {
		res.Captured = captured
		res.Capture = true
	}

	b.Clear(from)
	if mover.Is(Defender, Pawn) && to.Rank == AttackerBackRank {
		mover = NewUnit(Defender, Rook)
		res.Promoted = true
	}
	b.Set(to, mover)
	return res, true
}

// Swap exchanges the contents of two squares
func (b *Board) Swap(a, c Coordinate) {
	if !a.IsValid() || !c.IsValid() {
		return
	}
	ia, ic := a.ToIndex(), c.ToIndex()
	b.T[ia], b.T[ic] = b.T[ic], b.T[ia]
}
