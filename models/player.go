package models

import (
	"time"
)

// RegistrationStep describes how far a player has progressed through
// registration: first a display name, then a gift wish.
type RegistrationStep string

const (
	// RegistrationStepNew means the player exists but has no display name yet.
	RegistrationStepNew RegistrationStep = "new"
	// RegistrationStepNameSet means the display name is set but the wish is not.
	RegistrationStepNameSet RegistrationStep = "name_set"
	// RegistrationStepReady means both display name and wish are set.
	RegistrationStepReady RegistrationStep = "ready"
)

// Player represents a Secret Santa participant. DisplayName, Wish and
// AssignedRecipientID are nil until the corresponding step happens; a soft
// reset returns all three to nil without deleting the row.
type Player struct {
	ID                  int64     `db:"id"`
	DiscordID           int64     `db:"discord_id"`
	Username            string    `db:"username"`
	DisplayName         *string   `db:"display_name"`
	Wish                *string   `db:"wish"`
	AssignedRecipientID *int64    `db:"assigned_recipient_id"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// RegistrationStep returns the player's current position in the
// registration flow.
func (p *Player) RegistrationStep() RegistrationStep {
	switch {
	case p.DisplayName == nil:
		return RegistrationStepNew
	case p.Wish == nil:
		return RegistrationStepNameSet
	default:
		return RegistrationStepReady
	}
}

// IsReady reports whether the player has completed registration and can be
// included in a draw.
func (p *Player) IsReady() bool {
	return p.DisplayName != nil && p.Wish != nil
}
