package models

// Pair maps one santa to the player they gift.
type Pair struct {
	SantaID     int64
	RecipientID int64
}

// DrawResult is returned by a successful draw: how many players were paired
// and the pairing itself, so the caller can notify everyone involved.
type DrawResult struct {
	PlayerCount int
	Pairs       []Pair
}

// Pairing is a pair resolved to full player records, used for the admin
// pairs listing and the preview draw.
type Pairing struct {
	Santa     *Player
	Recipient *Player
}
