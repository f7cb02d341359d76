package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/entity"
	"github.com/rocketscienceinc/tictactoe-matchmaker/testing/suite"
)

func newMirroredGame() entity.Game {
	first, second := entity.NewPlayerID(), entity.NewPlayerID()
	game := entity.NewGame(entity.NewSessionID(), second, [2]entity.PlayerID{first, second})
	game.Board[2][1] = first

	return *game
}

func TestGameRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a game with one move played
	game := newMirroredGame()

	// When: Save is called
	err := gameRepo.Save(ctx, game)

	// Then: no error should be returned and the key exists
	require.NoError(t, err)

	exists, err := st.Storage.Exists(ctx, "game:"+game.ID.String()).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a mirrored game
		game := newMirroredGame()
		require.NoError(t, gameRepo.Save(ctx, game))

		// When: GetByID is called with its id
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the whole snapshot comes back
		require.NoError(t, err)
		assert.Equal(t, game, *retrievedGame)
	})

	t.Run("Save overwrites the previous snapshot", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a mirrored game that moves on
		game := newMirroredGame()
		require.NoError(t, gameRepo.Save(ctx, game))

		game.Board[0][0] = game.ActiveTurn
		game.ActiveTurn = game.Opponent(game.ActiveTurn)
		require.NoError(t, gameRepo.Save(ctx, game))

		// When: the snapshot is read back
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: it is the latest one
		require.NoError(t, err)
		assert.Equal(t, game, *retrievedGame)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetByID is called with an unknown id
		retrievedGame, err := gameRepo.GetByID(ctx, entity.NewSessionID())

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}
