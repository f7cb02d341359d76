package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// PlayerID identifies a client. It is minted by the server on connect and trusted afterwards.
type PlayerID uuid.UUID

// SessionID identifies one match between two players.
type SessionID uuid.UUID

func NewPlayerID() PlayerID {
	return PlayerID(uuid.New())
}

func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

// ParsePlayerID - parses the canonical UUID text form.
func ParsePlayerID(s string) (PlayerID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return PlayerID{}, fmt.Errorf("invalid player id %q: %w", s, err)
	}

	return PlayerID(id), nil
}

// ParseSessionID - parses the canonical UUID text form.
func ParseSessionID(s string) (SessionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return SessionID{}, fmt.Errorf("invalid session id %q: %w", s, err)
	}

	return SessionID(id), nil
}

func (that PlayerID) String() string {
	return uuid.UUID(that).String()
}

// IsZero reports whether the id is the nil UUID, which is never issued.
func (that PlayerID) IsZero() bool {
	return uuid.UUID(that) == uuid.Nil
}

func (that PlayerID) MarshalText() ([]byte, error) {
	return uuid.UUID(that).MarshalText()
}

func (that *PlayerID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(that).UnmarshalText(data)
}

func (that SessionID) String() string {
	return uuid.UUID(that).String()
}

func (that SessionID) MarshalText() ([]byte, error) {
	return uuid.UUID(that).MarshalText()
}

func (that *SessionID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(that).UnmarshalText(data)
}

// WaitingEntry is a player waiting for an opponent together with the session id reserved for the match.
type WaitingEntry struct {
	Player  PlayerID  `json:"user_id"`
	Session SessionID `json:"game_id"`
}

func NewWaitingEntry() WaitingEntry {
	return WaitingEntry{
		Player:  NewPlayerID(),
		Session: NewSessionID(),
	}
}
