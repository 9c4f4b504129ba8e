package handler

import (
	"encoding/json"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ugaemi/arena-server/internal/game"
	"github.com/ugaemi/arena-server/internal/room"
	"github.com/ugaemi/arena-server/internal/ws"
)

const (
	maxDisplayNameLen = 16
	maxRoomNameLen    = 32
	defaultCapacity   = 4
)

// LobbyHandler handles lobby-related messages.
type LobbyHandler struct {
	rm *room.Manager
}

// NewLobbyHandler creates a new lobby handler.
func NewLobbyHandler(rm *room.Manager) *LobbyHandler {
	return &LobbyHandler{rm: rm}
}

type createRoomRequest struct {
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	DisplayName string `json:"display_name"`
}

type joinRoomRequest struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

type changeCharacterRequest struct {
	Character int `json:"character"`
}

type roomJoinedResponse struct {
	room.Snapshot
	PlayerID  string `json:"player_id"`
	IsCreator bool   `json:"is_creator"`
}

// HandleCreateRoom handles room creation.
func (h *LobbyHandler) HandleCreateRoom(client *ws.Client, msg ws.Message) {
	var req createRoomRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid create_room data"))
		return
	}
	displayName, ok := cleanName(req.DisplayName, maxDisplayNameLen)
	if !ok {
		client.SendMessage(ws.NewErrorMessage("display_name is required"))
		return
	}
	roomName, ok := cleanName(req.Name, maxRoomNameLen)
	if !ok {
		roomName = displayName + "'s room"
	}
	capacity := req.Capacity
	if capacity == 0 {
		capacity = defaultCapacity
	}

	r, err := h.rm.CreateRoom(roomName, capacity, client.ID, displayName, client)
	if err != nil {
		sendError(client, err)
		return
	}

	sendJoined(client, ws.TypeRoomCreated, r)
	slog.Info("player created room", "player", client.ID, "name", displayName, "room", r.Code)
}

// HandleJoinRoom handles joining an existing room.
func (h *LobbyHandler) HandleJoinRoom(client *ws.Client, msg ws.Message) {
	var req joinRoomRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || strings.TrimSpace(req.Code) == "" {
		client.SendMessage(ws.NewErrorMessage("code and display_name are required"))
		return
	}
	displayName, ok := cleanName(req.DisplayName, maxDisplayNameLen)
	if !ok {
		client.SendMessage(ws.NewErrorMessage("code and display_name are required"))
		return
	}

	r, err := h.rm.JoinRoom(req.Code, client.ID, displayName, client)
	if err != nil {
		slog.Info("join rejected", "player", client.ID, "code", req.Code, "error", err)
		sendError(client, err)
		return
	}

	sendJoined(client, ws.TypeJoinedRoom, r)
	slog.Info("player joined room", "player", client.ID, "name", displayName, "room", r.Code)
}

// HandleLeaveRoom handles a player leaving a room without disconnecting.
func (h *LobbyHandler) HandleLeaveRoom(client *ws.Client, _ ws.Message) {
	if h.rm.LeaveRoom(client.ID) == nil {
		sendNotice(client, game.ErrNotInRoom)
	}
}

// HandleToggleReady flips the sender's ready flag.
func (h *LobbyHandler) HandleToggleReady(client *ws.Client, _ ws.Message) {
	r := h.rm.FindRoomByPlayerID(client.ID)
	if r == nil {
		sendNotice(client, game.ErrNotInRoom)
		return
	}
	if _, err := r.ToggleReady(client.ID); err != nil {
		sendNotice(client, err)
	}
}

// HandleStartMatch starts the sender's room if they created it.
func (h *LobbyHandler) HandleStartMatch(client *ws.Client, _ ws.Message) {
	r := h.rm.FindRoomByPlayerID(client.ID)
	if r == nil {
		sendNotice(client, game.ErrNotInRoom)
		return
	}
	if err := r.StartMatch(client.ID); err != nil {
		slog.Info("start rejected", "player", client.ID, "room", r.Code, "error", err)
		sendNotice(client, err)
	}
}

// HandleChangeCharacter switches the sender's character slot.
func (h *LobbyHandler) HandleChangeCharacter(client *ws.Client, msg ws.Message) {
	var req changeCharacterRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		sendNotice(client, game.ErrInvalidCharacterSlot)
		return
	}
	r := h.rm.FindRoomByPlayerID(client.ID)
	if r == nil {
		sendNotice(client, game.ErrNotInRoom)
		return
	}
	if err := r.ChangeCharacter(client.ID, req.Character); err != nil {
		sendNotice(client, err)
		return
	}
	client.SendMessage(ws.NewNotice(ws.NoticeSuccess, "character changed"))
}

// HandleDisconnect handles client disconnection.
func (h *LobbyHandler) HandleDisconnect(client *ws.Client) {
	if r := h.rm.LeaveRoom(client.ID); r != nil {
		slog.Info("player disconnected from room", "player", client.ID, "room", r.Code)
	}
}

func sendJoined(client *ws.Client, msgType string, r *room.Room) {
	snap := r.Snapshot()
	resp, err := ws.NewMessage(msgType, roomJoinedResponse{
		Snapshot:  snap,
		PlayerID:  client.ID,
		IsCreator: snap.CreatorID == client.ID,
	})
	if err != nil {
		slog.Error("failed to build join response", "room", r.Code, "error", err)
		return
	}
	client.SendMessage(resp)
}

// cleanName trims s and cuts it to max runes. It reports false when nothing
// is left.
func cleanName(s string, limit int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if utf8.RuneCountInString(s) > limit {
		s = string([]rune(s)[:limit])
	}
	return s, true
}
