package models

// GameState is the singleton row tracking where the game is in its
// lifecycle. PairsAssigned implies RegistrationOpen is false; a draw flips
// both flags in the same transaction.
type GameState struct {
	RegistrationOpen bool `db:"registration_open"`
	PairsAssigned    bool `db:"pairs_assigned"`
}

// GameStatus is the admin-facing status report.
type GameStatus struct {
	RegistrationOpen bool
	PairsAssigned    bool
	TotalPlayers     int
	ReadyPlayers     int
}
