package ws

import "encoding/json"

// Message represents a WebSocket message with type-based routing.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`

	// payload keeps the typed value so binary codecs can encode it directly.
	payload any
}

// Message types - Lobby (client -> server)
const (
	TypeCreateRoom      = "create_room"
	TypeJoinRoom        = "join_room"
	TypeLeaveRoom       = "leave_room"
	TypeToggleReady     = "toggle_ready"
	TypeStartMatch      = "start_match"
	TypeChangeCharacter = "change_character"
)

// Message types - Gameplay (client -> server)
const (
	TypeMove   = "move"
	TypeFire   = "fire"
	TypeReload = "reload"
)

// Message types - Lobby (server -> client)
const (
	TypeRoomCreated      = "room_created"
	TypeJoinedRoom       = "joined_room"
	TypeRoomUpdated      = "room_updated"
	TypeCharacterChanged = "character_changed"
	TypePlayerLeft       = "player_left"
)

// Message types - Match (server -> client)
const (
	TypeMatchStarted        = "match_started"
	TypeCountdownTick       = "countdown_tick"
	TypePlayersUpdated      = "players_updated"
	TypeProjectileSpawned   = "projectile_spawned"
	TypeProjectilesSnapshot = "projectiles_snapshot"
	TypePlayerDamaged       = "player_damaged"
	TypePlayerDied          = "player_died"
	TypePlayerRespawned     = "player_respawned"
	TypeAmmoUpdated         = "ammo_updated"
	TypeReloadComplete      = "reload_complete"
	TypeMatchEnded          = "match_ended"
)

// Message types - System
const (
	TypeError  = "error"
	TypeNotice = "notice"
)

// Notice kinds
const (
	NoticeError   = "error"
	NoticeSuccess = "success"
)

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Message string `json:"message"`
}

// NoticeMessage is a user-visible toast.
type NoticeMessage struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	payload := ErrorMessage{Message: msg}
	data, _ := json.Marshal(payload)
	return Message{Type: TypeError, Data: data, payload: payload}
}

// NewNotice creates a notice Message of the given kind.
func NewNotice(kind, msg string) Message {
	payload := NoticeMessage{Kind: kind, Message: msg}
	data, _ := json.Marshal(payload)
	return Message{Type: TypeNotice, Data: data, payload: payload}
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data, payload: payload}, nil
}
