package handler

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ugaemi/arena-server/internal/game"
	"github.com/ugaemi/arena-server/internal/room"
	"github.com/ugaemi/arena-server/internal/ws"
)

// GameplayHandler handles in-game messages.
type GameplayHandler struct {
	rm *room.Manager
}

// NewGameplayHandler creates a new gameplay handler.
func NewGameplayHandler(rm *room.Manager) *GameplayHandler {
	return &GameplayHandler{rm: rm}
}

type moveRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

type fireRequest struct {
	Angle float64 `json:"angle"`
}

type reloadResponse struct {
	Ammo int `json:"ammo"`
}

// HandleMove applies a position update. Every rejection is silent.
func (h *GameplayHandler) HandleMove(client *ws.Client, msg ws.Message) {
	var req moveRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		slog.Debug("invalid move data", "client", client.ID, "error", err)
		return
	}

	r := h.rm.FindRoomByPlayerID(client.ID)
	if r == nil {
		return
	}
	if err := r.Move(client.ID, req.X, req.Y, req.Angle); err != nil && !errors.Is(err, game.ErrInvalidMovement) {
		slog.Debug("move dropped", "player", client.ID, "room", r.Code, "error", err)
	}
}

// HandleFire spawns a projectile for the sender.
func (h *GameplayHandler) HandleFire(client *ws.Client, msg ws.Message) {
	var req fireRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid fire data"))
		return
	}

	r := h.rm.FindRoomByPlayerID(client.ID)
	if r == nil {
		sendNotice(client, game.ErrNotInRoom)
		return
	}
	if err := r.Fire(client.ID, req.Angle); err != nil {
		sendNotice(client, err)
	}
}

// HandleReload refills the sender's ammo.
func (h *GameplayHandler) HandleReload(client *ws.Client, _ ws.Message) {
	r := h.rm.FindRoomByPlayerID(client.ID)
	if r == nil {
		sendNotice(client, game.ErrNotInRoom)
		return
	}

	ammo, err := r.Reload(client.ID)
	if err != nil {
		sendNotice(client, err)
		return
	}
	resp, _ := ws.NewMessage(ws.TypeReloadComplete, reloadResponse{Ammo: ammo})
	r.SendToPlayer(client.ID, resp)
}
