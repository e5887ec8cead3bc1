package core

import "errors"

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrGameOver           = errors.New("game is over")
	ErrUnknownVariant     = errors.New("unknown variant")
	ErrUnknownInput       = errors.New("unknown input kind")
	ErrUnknownPieceKind   = errors.New("unknown piece kind")
	ErrNotPurchasable     = errors.New("piece kind is not for sale")
	ErrInvalidArena       = errors.New("invalid arena index")
)
