package constants

// Centralized constants for env keys, routes, websocket events and errors.
const (
	// Environment variable keys
	EnvConfigPath = "ZODIAX_CONFIG"
	EnvDBPath     = "ZODIAX_DB"
	EnvPort       = "PORT"

	// Defaults
	DefaultConfigPath = "./zodiax_config.json"
	DefaultDBPath     = "./data/zodiax.db"
)

// Routes used by the backend router
const (
	RouteWS           = "/ws"
	RouteBattleAttack = "/battle/attack"
	RouteBattleBlock  = "/battle/block"
	RouteBattleHeal   = "/battle/heal"
	RouteBattleCurse  = "/battle/curse"
	RouteGameStart    = "/game/start"
	RouteCharacters   = "/characters"
	RoutePlayerStats  = "/players/:name/stats"
	RouteMatches      = "/matches"
	RouteVersion      = "/version"
)

// Websocket event names. Inbound events arrive from clients, outbound
// events are emitted by the session layer.
const (
	// Inbound
	EventSelectCharacter   = "selectCharacter"
	EventPlayerAction      = "playerAction"
	EventRequestCharacters = "requestCharacters"

	// Outbound
	EventWaitingForMatch      = "waitingForMatch"
	EventGameFound            = "gameFound"
	EventGameUpdate           = "gameUpdate"
	EventOpponentDisconnected = "opponentDisconnected"
	EventError                = "error"
	EventAvailableCharacters  = "availableCharacters"
	EventCharacterTaken       = "characterTaken"
	EventCharacterSelected    = "characterSelected"
	EventCharacterFreed       = "characterFreed"
)

// Common JSON response keys
const (
	JSONKeySuccess = "success"
	JSONKeyMessage = "message"
	JSONKeyError   = "error"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest     = "Invalid request"
	ErrPlayerNotFound     = "Player or enemy not found"
	ErrFailedFetchRoster  = "Failed to fetch characters"
	ErrFailedFetchStats   = "Failed to fetch stats"
	ErrFailedFetchMatches = "Failed to fetch matches"
)

// Logging field names
const (
	LogFieldAddr      = "addr"
	LogFieldRoomID    = "room_id"
	LogFieldClientID  = "client_id"
	LogFieldCharacter = "character"
	LogFieldSkill     = "skill"
	LogFieldWinner    = "winner"
	LogFieldEvent     = "event"
)
