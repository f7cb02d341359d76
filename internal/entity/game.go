package entity

import (
	"encoding/json"
	"fmt"
)

// BoardSize is the side length of the square board.
const BoardSize = 3

// Board is indexed as Board[y][x]. A zero PlayerID marks an empty cell.
type Board [BoardSize][BoardSize]PlayerID

type Game struct {
	ID         SessionID   `json:"id"`
	ActiveTurn PlayerID    `json:"active_turn"`
	Players    [2]PlayerID `json:"players"`
	Board      Board       `json:"board"`
}

// NewGame - creates an empty board for two players, the first move belongs to turn.
func NewGame(id SessionID, turn PlayerID, players [2]PlayerID) *Game {
	return &Game{
		ID:         id,
		ActiveTurn: turn,
		Players:    players,
	}
}

// HasPlayer reports whether player takes part in the game.
func (that *Game) HasPlayer(player PlayerID) bool {
	return that.Players[0] == player || that.Players[1] == player
}

// Opponent returns the other participant. The result is undefined for a non-participant.
func (that *Game) Opponent(player PlayerID) PlayerID {
	if that.Players[0] == player {
		return that.Players[1]
	}
	return that.Players[0]
}

func (that *Game) IsActive(player PlayerID) bool {
	return that.ActiveTurn == player
}

// IsEmpty reports whether Board[y][x] is free. Coordinates must be in range.
func (that *Game) IsEmpty(x, y int) bool {
	return that.Board[y][x].IsZero()
}

// InBounds reports whether both coordinates address a cell.
func InBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

// Snapshot returns a copy that shares no memory with the game.
func (that *Game) Snapshot() Game {
	return *that
}

// MarshalJSON encodes empty cells as null.
func (that Board) MarshalJSON() ([]byte, error) {
	var rows [BoardSize][BoardSize]*PlayerID

	for y := range that {
		for x := range that[y] {
			if !that[y][x].IsZero() {
				owner := that[y][x]
				rows[y][x] = &owner
			}
		}
	}

	return json.Marshal(rows)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [BoardSize][BoardSize]*PlayerID
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	for y := range rows {
		for x := range rows[y] {
			that[y][x] = PlayerID{}
			if rows[y][x] != nil {
				that[y][x] = *rows[y][x]
			}
		}
	}

	return nil
}
