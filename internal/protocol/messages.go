// Package protocol defines the JSON wire frames exchanged between a
// room and its connected clients.
package protocol

// ActionType is the discriminator carried on a client "action" message.
type ActionType string

const (
	ActionDraw    ActionType = "draw"
	ActionDiscard ActionType = "discard"
	ActionChi     ActionType = "chi"
	ActionPong    ActionType = "pong"
	ActionKong    ActionType = "kong"
	ActionWin     ActionType = "win"
	ActionPass    ActionType = "pass"
)

// Client → Server message type discriminators.
const (
	MsgReady     = "ready"
	MsgStartGame = "start-game"
	MsgAction    = "action"
	MsgNextRound = "next-round"
	MsgLeave     = "leave"
)

// Server → Client message type discriminators.
const (
	MsgRoomState          = "room-state"
	MsgGameStart          = "game-start"
	MsgGameState          = "game-state"
	MsgYourTurn           = "your-turn"
	MsgClaimWindow        = "claim-window"
	MsgRoundOver          = "round-over"
	MsgPlayerDisconnected = "player-disconnected"
	MsgPlayerReconnected  = "player-reconnected"
	MsgError              = "error"
)

// TurnPhase values for YourTurn.Phase.
const (
	PhaseHumanNeedsDraw    = "human-needs-draw"
	PhaseHumanNeedsDiscard = "human-needs-discard"
)

// ClientMessage is the union of every client → server frame. Only the
// fields relevant to Type are populated; unused fields are zero.
type ClientMessage struct {
	Type     string     `json:"type"`
	IsReady  bool       `json:"isReady,omitempty"`
	Action   ActionType `json:"action,omitempty"`
	TileID   string     `json:"tileId,omitempty"`
	ChiIndex *int       `json:"chiIndex,omitempty"`
}

// RoomStatePayload is sent on lobby roster changes.
type RoomStatePayload struct {
	Type string      `json:"type"`
	Room interface{} `json:"room"`
}

func NewRoomState(room interface{}) RoomStatePayload {
	return RoomStatePayload{Type: MsgRoomState, Room: room}
}

// GameStatePayload carries a per-player projected state, used both for
// the lobby→playing transition (Type MsgGameStart) and after every
// mutation (Type MsgGameState).
type GameStatePayload struct {
	Type  string      `json:"type"`
	State interface{} `json:"state"`
}

func NewGameStart(state interface{}) GameStatePayload {
	return GameStatePayload{Type: MsgGameStart, State: state}
}

func NewGameState(state interface{}) GameStatePayload {
	return GameStatePayload{Type: MsgGameState, State: state}
}

// YourTurnPayload notifies a human it is their turn.
type YourTurnPayload struct {
	Type             string      `json:"type"`
	Phase            string      `json:"phase"`
	AvailableActions interface{} `json:"availableActions"`
}

func NewYourTurn(phase string, availableActions interface{}) YourTurnPayload {
	return YourTurnPayload{Type: MsgYourTurn, Phase: phase, AvailableActions: availableActions}
}

// ClaimWindowPayload is sent to humans holding at least one legal claim.
type ClaimWindowPayload struct {
	Type             string      `json:"type"`
	TimeoutMillis    int64       `json:"timeout"`
	AvailableActions interface{} `json:"availableActions"`
}

func NewClaimWindow(timeoutMillis int64, availableActions interface{}) ClaimWindowPayload {
	return ClaimWindowPayload{Type: MsgClaimWindow, TimeoutMillis: timeoutMillis, AvailableActions: availableActions}
}

// RoundOverPayload ends a hand.
type RoundOverPayload struct {
	Type          string      `json:"type"`
	WinnerIndex   *int        `json:"winnerIndex,omitempty"`
	TaiResult     interface{} `json:"taiResult,omitempty"`
	PaymentResult interface{} `json:"paymentResult,omitempty"`
	Message       string      `json:"message,omitempty"`
}

func NewRoundOver(winnerIndex *int, taiResult, paymentResult interface{}, message string) RoundOverPayload {
	return RoundOverPayload{
		Type:          MsgRoundOver,
		WinnerIndex:   winnerIndex,
		TaiResult:     taiResult,
		PaymentResult: paymentResult,
		Message:       message,
	}
}

// PlayerLifecyclePayload covers player-disconnected / player-reconnected.
type PlayerLifecyclePayload struct {
	Type        string `json:"type"`
	PlayerIndex int    `json:"playerIndex"`
}

func NewPlayerDisconnected(playerIndex int) PlayerLifecyclePayload {
	return PlayerLifecyclePayload{Type: MsgPlayerDisconnected, PlayerIndex: playerIndex}
}

func NewPlayerReconnected(playerIndex int) PlayerLifecyclePayload {
	return PlayerLifecyclePayload{Type: MsgPlayerReconnected, PlayerIndex: playerIndex}
}

// ErrorPayload reports a rejected or invalid action.
type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(message string) ErrorPayload {
	return ErrorPayload{Type: MsgError, Message: message}
}
