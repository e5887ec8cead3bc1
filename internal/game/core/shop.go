package core

// Offer is a purchasable unit in the shop catalog
type Offer struct {
	Kind  PieceKind
	Label string
	Cost  int
}

// Catalog is the ordered list of offers shown to the player
type Catalog []Offer

// DefaultCatalog returns the standard shop: pawn 5, knight 12, bishop 12, rook 18
func DefaultCatalog() Catalog {
	return Catalog{
		{Kind: Pawn, Label: "Pawn", Cost: 5},
		{Kind: Knight, Label: "Knight", Cost: 12},
		{Kind: Bishop, Label: "Bishop", Cost: 12},
		{Kind: Rook, Label: "Rook", Cost: 18},
	}
}

// Lookup returns the offer for kind
func (c Catalog) Lookup(kind PieceKind) (Offer, bool) {
	for _, o := range c {
		if o.Kind == kind {
			return o, true
		}
	}
	return Offer{}, false
}

// At returns the offer at a 0-based slot, used by number-key shortcuts
func (c Catalog) At(slot int) (Offer, bool) {
	if slot < 0 || slot >= len(c) {
		return Offer{}, false
	}
	return c[slot], true
}
