package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/entity"
	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/usecase"
)

type gameUseCase interface {
	Connect(ctx context.Context) (usecase.ConnectResult, error)
	Move(ctx context.Context, player entity.PlayerID, session entity.SessionID, x, y int) error
	Poll(ctx context.Context, player entity.PlayerID, session entity.SessionID) (usecase.PollResult, error)
}

type Handlers struct {
	logger *slog.Logger

	game gameUseCase
}

func NewHandlers(logger *slog.Logger, game gameUseCase) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest"),
		game:   game,
	}
}

// Connect - GET /connect.
func (that *Handlers) Connect(w http.ResponseWriter, r *http.Request) {
	result, err := that.game.Connect(r.Context())
	if err != nil {
		that.writeError(w, err, entity.PlayerID{}, entity.SessionID{})
		return
	}

	resp := connectResponse{
		ClientInfo: clientInfo{
			UserID: result.Player,
			GameID: result.Session,
		},
		ConnectionState: connectionState{Kind: kindWaitingForGame},
	}

	if result.Paired {
		turn := result.Turn
		resp.ConnectionState = connectionState{Kind: kindJoinedGame, Turn: &turn}
	}

	that.writeJSON(w, http.StatusOK, resp)
}

// Move - GET /move?user_id=&game_id=&x=&y=.
func (that *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	player, session, err := parseClientInfo(query.Get("user_id"), query.Get("game_id"))
	if err != nil {
		that.writeBadRequest(w, err)
		return
	}

	x, err := parseCoordinate("x", query.Get("x"))
	if err != nil {
		that.writeBadRequest(w, err)
		return
	}

	y, err := parseCoordinate("y", query.Get("y"))
	if err != nil {
		that.writeBadRequest(w, err)
		return
	}

	if err = that.game.Move(r.Context(), player, session, x, y); err != nil {
		that.writeError(w, err, player, session)
		return
	}

	that.writeJSON(w, http.StatusOK, moveResponse{Kind: kindOk})
}

// Poll - GET /poll?user_id=&game_id=.
func (that *Handlers) Poll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	player, session, err := parseClientInfo(query.Get("user_id"), query.Get("game_id"))
	if err != nil {
		that.writeBadRequest(w, err)
		return
	}

	result, err := that.game.Poll(r.Context(), player, session)
	if err != nil {
		that.writeError(w, err, player, session)
		return
	}

	if result.Status == usecase.PollWaitingForGame {
		that.writeJSON(w, http.StatusOK, pollResponse{Kind: kindWaitingForGame})
		return
	}

	game := result.Game
	that.writeJSON(w, http.StatusOK, pollResponse{Kind: kindActiveGame, Game: &game})
}

func parseClientInfo(rawPlayer, rawSession string) (entity.PlayerID, entity.SessionID, error) {
	player, err := entity.ParsePlayerID(rawPlayer)
	if err != nil {
		return entity.PlayerID{}, entity.SessionID{}, fmt.Errorf("user_id: %w", err)
	}

	session, err := entity.ParseSessionID(rawSession)
	if err != nil {
		return entity.PlayerID{}, entity.SessionID{}, fmt.Errorf("game_id: %w", err)
	}

	return player, session, nil
}

func parseCoordinate(name, raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}

	return value, nil
}

// writeError - encodes a core error with its kind and the fields the client needs to correct it.
func (that *Handlers) writeError(w http.ResponseWriter, err error, player entity.PlayerID, session entity.SessionID) {
	kind := apperror.Kind(err)
	resp := errorResponse{Kind: kind}

	switch kind {
	case apperror.KindSpotAlreadyTaken:
		var spotErr *apperror.SpotTakenError
		if errors.As(err, &spotErr) {
			resp.X, resp.Y = &spotErr.X, &spotErr.Y
		}
	case apperror.KindInvalidGameID:
		resp.GameID = &session
	case apperror.KindInvalidUserID, apperror.KindInvalidPlayer:
		resp.UserID = &player
	case apperror.KindInternal:
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	that.writeJSON(w, http.StatusBadRequest, resp)
}

func (that *Handlers) writeBadRequest(w http.ResponseWriter, err error) {
	that.writeJSON(w, http.StatusBadRequest, errorResponse{Kind: kindBadRequest, Message: err.Error()})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
