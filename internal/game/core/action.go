package core

// InputKind represents the type of external input
type InputKind int

const (
	InputPurchase InputKind = iota
	InputPlace
	InputMove
	InputReset
	InputTick
)

func (k InputKind) String() string {
	switch k {
	case InputPurchase:
		return "purchase"
	case InputPlace:
		return "place"
	case InputMove:
		return "move"
	case InputReset:
		return "reset"
	case InputTick:
		return "tick"
	default:
		return "unknown"
	}
}

// Input is a request delivered to a running simulation
type Input interface {
	GetKind() InputKind
	Validate() error
}

// PurchaseInput selects a shop offer to be placed later
type PurchaseInput struct {
	Piece PieceKind
}

// PlaceInput deploys the pending purchase on a square
type PlaceInput struct {
	At Coordinate
}

// MoveInput moves one of the player's units. Arena is ignored by single-board variants.
type MoveInput struct {
	Arena int
	From  Coordinate
	To    Coordinate
}

// ResetInput discards all state and starts a fresh game
type ResetInput struct{}

// TickInput forces Count ticks to resolve regardless of the clock
type TickInput struct {
	Count int
}

func (PurchaseInput) GetKind() InputKind { return InputPurchase }
func (PlaceInput) GetKind() InputKind    { return InputPlace }
func (MoveInput) GetKind() InputKind     { return InputMove }
func (ResetInput) GetKind() InputKind    { return InputReset }
func (TickInput) GetKind() InputKind     { return InputTick }

func (p PurchaseInput) Validate() error {
	if p.Piece < Pawn || p.Piece > King {
		return ErrUnknownPieceKind
	}
	return nil
}

func (p PlaceInput) Validate() error {
	if !p.At.IsValid() {
		return ErrInvalidCoordinates
	}
	return nil
}

func (m MoveInput) Validate() error {
	if !m.From.IsValid() || !m.To.IsValid() {
		return ErrInvalidCoordinates
	}
	if m.Arena < 0 {
		return ErrInvalidArena
	}
	return nil
}

func (ResetInput) Validate() error { return nil }

func (t TickInput) Validate() error {
	if t.Count < 0 {
		return ErrUnknownInput
	}
	return nil
}
