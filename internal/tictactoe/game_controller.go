package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/entity"
)

// MakeMove - validates the move and applies it to the game.
// The game is left untouched when the move is rejected.
// No win or draw detection happens here; a game only ever alternates turns.
func MakeMove(gameInstance *entity.Game, player entity.PlayerID, x, y int) error {
	if err := validateMove(gameInstance, player, x, y); err != nil {
		return err
	}

	gameInstance.Board[y][x] = player
	gameInstance.ActiveTurn = gameInstance.Opponent(player)

	return nil
}

// validateMove - checks the move, the first failing rule wins.
func validateMove(gameInstance *entity.Game, player entity.PlayerID, x, y int) error {
	if !gameInstance.HasPlayer(player) {
		return apperror.ErrInvalidPlayer
	}

	if !gameInstance.IsActive(player) {
		return apperror.ErrNotYourTurn
	}

	if !entity.InBounds(x, y) {
		return apperror.ErrInvalidIndex
	}

	if !gameInstance.IsEmpty(x, y) {
		return &apperror.SpotTakenError{X: x, Y: y}
	}

	return nil
}
