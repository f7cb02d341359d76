package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPlayer    = errors.New("player is not part of the game")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrInvalidIndex     = errors.New("cell index is out of range")
	ErrSpotAlreadyTaken = errors.New("spot is already taken")
	ErrInvalidGameID    = errors.New("game id is not known")
	ErrInvalidUserID    = errors.New("user id is not known")
)

// Wire kinds of the request-level errors.
const (
	KindInvalidPlayer    = "InvalidPlayer"
	KindNotYourTurn      = "NotYourTurn"
	KindInvalidIndex     = "InvalidIndex"
	KindSpotAlreadyTaken = "SpotAlreadyTaken"
	KindInvalidGameID    = "InvalidGameId"
	KindInvalidUserID    = "InvalidUserId"
	KindInternal         = "Internal"
)

// SpotTakenError carries the coordinates of an occupied cell.
type SpotTakenError struct {
	X, Y int
}

func (that *SpotTakenError) Error() string {
	return fmt.Sprintf("%s: x=%d y=%d", ErrSpotAlreadyTaken, that.X, that.Y)
}

func (that *SpotTakenError) Unwrap() error {
	return ErrSpotAlreadyTaken
}

// Kind maps err to its wire kind. Errors outside the taxonomy are KindInternal.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPlayer):
		return KindInvalidPlayer
	case errors.Is(err, ErrNotYourTurn):
		return KindNotYourTurn
	case errors.Is(err, ErrInvalidIndex):
		return KindInvalidIndex
	case errors.Is(err, ErrSpotAlreadyTaken):
		return KindSpotAlreadyTaken
	case errors.Is(err, ErrInvalidGameID):
		return KindInvalidGameID
	case errors.Is(err, ErrInvalidUserID):
		return KindInvalidUserID
	default:
		return KindInternal
	}
}

// IsRequestError reports whether err is client-correctable.
func IsRequestError(err error) bool {
	return Kind(err) != KindInternal
}
