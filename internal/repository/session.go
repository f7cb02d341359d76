package repository

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/entity"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)

// DefaultShardCount is used when a non-positive shard count is requested.
const DefaultShardCount = 32

// SessionStore keeps every game in memory for the lifetime of the process.
// Sessions are spread over shards; a shard lock only guards its map, each
// session carries its own lock, so work on unrelated sessions never contends.
type SessionStore struct {
	shards []*sessionShard
}

type sessionShard struct {
	mu       sync.RWMutex
	sessions map[entity.SessionID]*sessionEntry
}

type sessionEntry struct {
	mu   sync.RWMutex
	game entity.Game
}

func NewSessionStore(shardCount int) *SessionStore {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}

	shards := make([]*sessionShard, shardCount)
	for i := range shards {
		shards[i] = &sessionShard{
			sessions: make(map[entity.SessionID]*sessionEntry),
		}
	}

	return &SessionStore{shards: shards}
}

func (that *SessionStore) shard(id entity.SessionID) *sessionShard {
	hash := binary.BigEndian.Uint64(id[8:])
	return that.shards[hash%uint64(len(that.shards))]
}

// Insert - stores a new game under its id.
func (that *SessionStore) Insert(game entity.Game) error {
	shard := that.shard(game.ID)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if _, exists := shard.sessions[game.ID]; exists {
		return fmt.Errorf("%w: %s", ErrSessionExists, game.ID)
	}

	shard.sessions[game.ID] = &sessionEntry{game: game}

	return nil
}

// Get - returns a point-in-time copy of the game.
func (that *SessionStore) Get(id entity.SessionID) (entity.Game, bool) {
	entry, ok := that.lookup(id)
	if !ok {
		return entity.Game{}, false
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()

	return entry.game, true
}

// Update - runs fn with exclusive access to the game. Changes made by fn are
// committed only when it returns nil. The returned copy is the state after
// the call, whether or not fn succeeded.
func (that *SessionStore) Update(id entity.SessionID, fn func(game *entity.Game) error) (entity.Game, error) {
	entry, ok := that.lookup(id)
	if !ok {
		return entity.Game{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	game := entry.game
	if err := fn(&game); err != nil {
		return entry.game, err
	}

	entry.game = game

	return game, nil
}

// Len - returns the number of stored sessions.
func (that *SessionStore) Len() int {
	total := 0
	for _, shard := range that.shards {
		shard.mu.RLock()
		total += len(shard.sessions)
		shard.mu.RUnlock()
	}

	return total
}

// Range - calls fn with a copy of every stored game until fn returns false.
func (that *SessionStore) Range(fn func(game entity.Game) bool) {
	for _, shard := range that.shards {
		shard.mu.RLock()
		entries := make([]*sessionEntry, 0, len(shard.sessions))
		for _, entry := range shard.sessions {
			entries = append(entries, entry)
		}
		shard.mu.RUnlock()

		for _, entry := range entries {
			entry.mu.RLock()
			game := entry.game
			entry.mu.RUnlock()

			if !fn(game) {
				return
			}
		}
	}
}

func (that *SessionStore) lookup(id entity.SessionID) (*sessionEntry, bool) {
	shard := that.shard(id)

	shard.mu.RLock()
	defer shard.mu.RUnlock()

	entry, ok := shard.sessions[id]

	return entry, ok
}
