package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/entity"
)

func newStoredGame() entity.Game {
	first, second := entity.NewPlayerID(), entity.NewPlayerID()
	return *entity.NewGame(entity.NewSessionID(), first, [2]entity.PlayerID{first, second})
}

func TestSessionStore_Insert(t *testing.T) {
	t.Run("Insert then Get returns the game", func(t *testing.T) {
		// Given: an empty store
		store := NewSessionStore(4)
		game := newStoredGame()

		// When: a game is inserted
		require.NoError(t, store.Insert(game))

		// Then: it can be read back
		stored, ok := store.Get(game.ID)
		require.True(t, ok)
		assert.Equal(t, game, stored)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("Duplicate id is rejected", func(t *testing.T) {
		store := NewSessionStore(4)
		game := newStoredGame()
		require.NoError(t, store.Insert(game))

		other := newStoredGame()
		other.ID = game.ID
		err := store.Insert(other)

		require.ErrorIs(t, err, ErrSessionExists)
		stored, _ := store.Get(game.ID)
		assert.Equal(t, game, stored)
	})

	t.Run("Non-positive shard count falls back to the default", func(t *testing.T) {
		store := NewSessionStore(0)
		assert.Len(t, store.shards, DefaultShardCount)
	})
}

func TestSessionStore_Get(t *testing.T) {
	t.Run("Unknown id", func(t *testing.T) {
		store := NewSessionStore(4)

		_, ok := store.Get(entity.NewSessionID())

		assert.False(t, ok)
	})

	t.Run("Returned copy is detached from the store", func(t *testing.T) {
		store := NewSessionStore(4)
		game := newStoredGame()
		require.NoError(t, store.Insert(game))

		copied, _ := store.Get(game.ID)
		copied.Board[0][0] = copied.ActiveTurn

		stored, _ := store.Get(game.ID)
		assert.True(t, stored.Board[0][0].IsZero())
	})
}

func TestSessionStore_Update(t *testing.T) {
	errRejected := errors.New("rejected")

	t.Run("Successful update is committed", func(t *testing.T) {
		store := NewSessionStore(4)
		game := newStoredGame()
		require.NoError(t, store.Insert(game))

		updated, err := store.Update(game.ID, func(g *entity.Game) error {
			g.Board[1][2] = g.ActiveTurn
			g.ActiveTurn = g.Opponent(g.ActiveTurn)
			return nil
		})

		require.NoError(t, err)
		stored, _ := store.Get(game.ID)
		assert.Equal(t, updated, stored)
		assert.Equal(t, game.Players[0], stored.Board[1][2])
		assert.Equal(t, game.Players[1], stored.ActiveTurn)
	})

	t.Run("Failed update is discarded", func(t *testing.T) {
		store := NewSessionStore(4)
		game := newStoredGame()
		require.NoError(t, store.Insert(game))

		current, err := store.Update(game.ID, func(g *entity.Game) error {
			g.Board[0][0] = g.ActiveTurn
			return errRejected
		})

		require.ErrorIs(t, err, errRejected)
		assert.Equal(t, game, current)
		stored, _ := store.Get(game.ID)
		assert.Equal(t, game, stored)
	})

	t.Run("Unknown id", func(t *testing.T) {
		store := NewSessionStore(4)

		_, err := store.Update(entity.NewSessionID(), func(*entity.Game) error {
			t.Fatal("fn must not run for an unknown session")
			return nil
		})

		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Concurrent updates on one session are serialized", func(t *testing.T) {
		store := NewSessionStore(4)
		game := newStoredGame()
		require.NoError(t, store.Insert(game))

		const workers = 200
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				_, _ = store.Update(game.ID, func(g *entity.Game) error {
					g.ActiveTurn = g.Opponent(g.ActiveTurn)
					return nil
				})
			}()
		}
		wg.Wait()

		// an even number of flips returns the turn to the first player
		stored, _ := store.Get(game.ID)
		assert.Equal(t, game.ActiveTurn, stored.ActiveTurn)
	})

	t.Run("Held session does not block other sessions", func(t *testing.T) {
		// Given: two sessions, one of them locked by a slow update
		store := NewSessionStore(1)
		slow, fast := newStoredGame(), newStoredGame()
		require.NoError(t, store.Insert(slow))
		require.NoError(t, store.Insert(fast))

		locked := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_, _ = store.Update(slow.ID, func(*entity.Game) error {
				close(locked)
				<-release
				return nil
			})
		}()
		<-locked
		defer close(release)

		// When: the other session is read and updated, even in the same shard
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = store.Get(fast.ID)
			_, _ = store.Update(fast.ID, func(*entity.Game) error { return nil })
			_ = store.Insert(newStoredGame())
		}()

		// Then: it completes while the first one is still held
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("unrelated session was blocked")
		}
	})
}

func TestSessionStore_Range(t *testing.T) {
	store := NewSessionStore(8)
	ids := make(map[entity.SessionID]bool)
	for i := 0; i < 20; i++ {
		game := newStoredGame()
		ids[game.ID] = true
		require.NoError(t, store.Insert(game))
	}

	t.Run("Visits every session once", func(t *testing.T) {
		seen := make(map[entity.SessionID]bool)
		store.Range(func(game entity.Game) bool {
			assert.False(t, seen[game.ID])
			seen[game.ID] = true
			return true
		})

		assert.Equal(t, ids, seen)
	})

	t.Run("Stops when fn returns false", func(t *testing.T) {
		visited := 0
		store.Range(func(entity.Game) bool {
			visited++
			return visited < 3
		})

		assert.Equal(t, 3, visited)
	})
}
