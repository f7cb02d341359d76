package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/entity"
	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/repository"
	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/tictactoe"
)

type sessionStore interface {
	Insert(game entity.Game) error
	Get(id entity.SessionID) (entity.Game, bool)
	Update(id entity.SessionID, fn func(game *entity.Game) error) (entity.Game, error)
}

type waitingQueue interface {
	PopOrPush(pair func(other entity.WaitingEntry) error, enqueue func() entity.WaitingEntry) (entity.WaitingEntry, bool, error)
	Contains(player entity.PlayerID) bool
}

type gameMirror interface {
	Save(ctx context.Context, game entity.Game) error
}

// ConnectResult is the outcome of a connect call. Turn is set only when Paired.
type ConnectResult struct {
	Player  entity.PlayerID
	Session entity.SessionID
	Paired  bool
	Turn    entity.PlayerID
}

// PollStatus tells an active game apart from a pending pairing.
type PollStatus string

const (
	PollActiveGame     PollStatus = "ActiveGame"
	PollWaitingForGame PollStatus = "WaitingForGame"
)

// PollResult carries the game snapshot when Status is PollActiveGame.
type PollResult struct {
	Status PollStatus
	Game   entity.Game
}

// GameManager holds the state shared by every request: the waiting queue, the sessions and the optional mirror.
type GameManager struct {
	logger *slog.Logger

	queue  waitingQueue
	store  sessionStore
	mirror gameMirror

	coinFlip func() bool
}

// NewGameManager - mirror may be nil, then snapshots are not mirrored.
func NewGameManager(logger *slog.Logger, queue waitingQueue, store sessionStore, mirror gameMirror) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		queue:  queue,
		store:  store,
		mirror: mirror,

		coinFlip: func() bool { return rand.IntN(2) == 0 }, //nolint: gosec // fairness only
	}
}

// Connect - pairs the caller with a waiting player or puts the caller in the queue.
func (that *GameManager) Connect(ctx context.Context) (ConnectResult, error) {
	log := that.logger.With("method", "Connect")

	caller := entity.NewPlayerID()

	var game entity.Game
	entry, paired, err := that.queue.PopOrPush(func(other entity.WaitingEntry) error {
		turn := other.Player
		if that.coinFlip() {
			turn = caller
		}

		game = *entity.NewGame(other.Session, turn, [2]entity.PlayerID{caller, other.Player})
		if err := that.store.Insert(game); err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}

		return nil
	}, func() entity.WaitingEntry {
		return entity.WaitingEntry{Player: caller, Session: entity.NewSessionID()}
	})
	if err != nil {
		log.Error("failed to pair players", "error", err)
		return ConnectResult{}, fmt.Errorf("failed to connect: %w", err)
	}

	if !paired {
		log.Debug("player is waiting", "player", caller, "game", entry.Session)
		return ConnectResult{Player: caller, Session: entry.Session}, nil
	}

	log.Debug("players paired", "game", game.ID, "player", caller, "opponent", entry.Player, "turn", game.ActiveTurn)
	that.mirrorGame(ctx, game)

	return ConnectResult{
		Player:  caller,
		Session: game.ID,
		Paired:  true,
		Turn:    game.ActiveTurn,
	}, nil
}

// Move - applies the player's move to the session.
func (that *GameManager) Move(ctx context.Context, player entity.PlayerID, session entity.SessionID, x, y int) error {
	log := that.logger.With("method", "Move", "game", session, "player", player)

	game, err := that.store.Update(session, func(game *entity.Game) error {
		return tictactoe.MakeMove(game, player, x, y)
	})
	if errors.Is(err, repository.ErrSessionNotFound) {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidGameID, session)
	}

	if err != nil {
		log.Debug("move rejected", "x", x, "y", y, "error", err)
		return fmt.Errorf("failed to make move: %w", err)
	}

	log.Debug("move accepted", "x", x, "y", y, "turn", game.ActiveTurn)
	that.mirrorGame(ctx, game)

	return nil
}

// Poll - reports the state visible to the player. It never changes anything.
func (that *GameManager) Poll(_ context.Context, player entity.PlayerID, session entity.SessionID) (PollResult, error) {
	if result, found, err := that.pollSession(player, session); found {
		return result, err
	}

	if that.queue.Contains(player) {
		return PollResult{Status: PollWaitingForGame}, nil
	}

	// the player may have been paired between the lookup and the queue check
	if result, found, err := that.pollSession(player, session); found {
		return result, err
	}

	return PollResult{}, fmt.Errorf("%w: %s", apperror.ErrInvalidGameID, session)
}

func (that *GameManager) pollSession(player entity.PlayerID, session entity.SessionID) (PollResult, bool, error) {
	game, ok := that.store.Get(session)
	if !ok {
		return PollResult{}, false, nil
	}

	if !game.HasPlayer(player) {
		return PollResult{}, true, fmt.Errorf("%w: %s", apperror.ErrInvalidUserID, player)
	}

	return PollResult{Status: PollActiveGame, Game: game}, true, nil
}

// mirrorGame - the mirror is best effort, a failure never fails the request.
func (that *GameManager) mirrorGame(ctx context.Context, game entity.Game) {
	if that.mirror == nil {
		return
	}

	if err := that.mirror.Save(ctx, game); err != nil {
		that.logger.Warn("failed to mirror game", "game", game.ID, "error", err)
	}
}
