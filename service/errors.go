package service

import (
	"errors"
	"fmt"
)

// Domain errors reported to the presentation layer. None of these are
// fatal; the bot maps each one to a user-facing message.
var (
	// ErrPlayerNotFound means a player reference did not resolve. Players
	// are always created through StartRegistration, so hitting this from a
	// registration step means the player never joined.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrRegistrationClosed means a registration step was attempted after
	// the draw closed registration.
	ErrRegistrationClosed = errors.New("registration is closed")

	// ErrRegistrationIncomplete means the player never finished both
	// registration steps.
	ErrRegistrationIncomplete = errors.New("registration incomplete")

	// ErrNameNotSet means a wish was submitted before a display name.
	ErrNameNotSet = errors.New("display name not set")

	// ErrInvalidInput means the submitted text was empty, whitespace-only
	// or looked like a command; the registration state is unchanged.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyDrawn guards against a second draw. The first pairing is
	// left untouched.
	ErrAlreadyDrawn = errors.New("pairs already assigned")

	// ErrUnsatisfiable is reported by the derangement engine when no valid
	// pairing exists (fewer than two ids) or the retry budget ran out.
	ErrUnsatisfiable = errors.New("no valid derangement found")

	// ErrDrawFailed wraps ErrUnsatisfiable at the lifecycle level; the
	// admin can simply rerun the draw.
	ErrDrawFailed = errors.New("draw failed")

	// ErrDrawNotYetRun means an assignment was queried before any draw.
	ErrDrawNotYetRun = errors.New("draw has not been run yet")

	// ErrNoAssignment means the game is drawn but this player has no
	// recipient recorded. The draw contract makes this unreachable, but it
	// is handled rather than assumed away.
	ErrNoAssignment = errors.New("no assigned recipient")

	// ErrInsufficientPlayers is the errors.Is target for
	// InsufficientPlayersError.
	ErrInsufficientPlayers = errors.New("not enough ready players")
)

// InsufficientPlayersError reports a draw attempted with fewer than two
// ready players, carrying the count for the admin message.
type InsufficientPlayersError struct {
	Ready int
}

func (e *InsufficientPlayersError) Error() string {
	return fmt.Sprintf("not enough ready players: have %d, need at least 2", e.Ready)
}

func (e *InsufficientPlayersError) Unwrap() error {
	return ErrInsufficientPlayers
}
