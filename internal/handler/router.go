package handler

import (
	"log/slog"

	"github.com/ugaemi/arena-server/internal/room"
	"github.com/ugaemi/arena-server/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
// A client's connection ID doubles as its player ID.
type Router struct {
	lobby    *LobbyHandler
	gameplay *GameplayHandler
}

// NewRouter creates a new message router.
func NewRouter(rm *room.Manager) *Router {
	return &Router{
		lobby:    NewLobbyHandler(rm),
		gameplay: NewGameplayHandler(rm),
	}
}

// HandleMessage parses and routes an incoming client message. A panic while
// handling one message is answered with a generic error to that client only.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("message handler panicked", "client", cm.Client.ID, "panic", rec)
			cm.Client.SendMessage(ws.NewErrorMessage(msgInternal))
		}
	}()

	msg, err := cm.Client.Decode(cm.Data)
	if err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	// Lobby messages
	case ws.TypeCreateRoom:
		r.lobby.HandleCreateRoom(cm.Client, msg)
	case ws.TypeJoinRoom:
		r.lobby.HandleJoinRoom(cm.Client, msg)
	case ws.TypeLeaveRoom:
		r.lobby.HandleLeaveRoom(cm.Client, msg)
	case ws.TypeToggleReady:
		r.lobby.HandleToggleReady(cm.Client, msg)
	case ws.TypeStartMatch:
		r.lobby.HandleStartMatch(cm.Client, msg)
	case ws.TypeChangeCharacter:
		r.lobby.HandleChangeCharacter(cm.Client, msg)

	// Gameplay messages
	case ws.TypeMove:
		r.gameplay.HandleMove(cm.Client, msg)
	case ws.TypeFire:
		r.gameplay.HandleFire(cm.Client, msg)
	case ws.TypeReload:
		r.gameplay.HandleReload(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.lobby.HandleDisconnect(client)
}
