package rest

import "github.com/rocketscienceinc/tictactoe-matchmaker/internal/entity"

const (
	kindWaitingForGame = "WaitingForGame"
	kindJoinedGame     = "JoinedGame"
	kindActiveGame     = "ActiveGame"
	kindOk             = "Ok"
	kindBadRequest     = "BadRequest"
)

type clientInfo struct {
	UserID entity.PlayerID  `json:"user_id"`
	GameID entity.SessionID `json:"game_id"`
}

type connectionState struct {
	Kind string           `json:"kind"`
	Turn *entity.PlayerID `json:"turn,omitempty"`
}

type connectResponse struct {
	ClientInfo      clientInfo      `json:"client_info"`
	ConnectionState connectionState `json:"connection_state"`
}

type moveResponse struct {
	Kind string `json:"kind"`
}

type pollResponse struct {
	Kind string       `json:"kind"`
	Game *entity.Game `json:"game,omitempty"`
}

type errorResponse struct {
	Kind    string            `json:"kind"`
	X       *int              `json:"x,omitempty"`
	Y       *int              `json:"y,omitempty"`
	UserID  *entity.PlayerID  `json:"user_id,omitempty"`
	GameID  *entity.SessionID `json:"game_id,omitempty"`
	Message string            `json:"message,omitempty"`
}
