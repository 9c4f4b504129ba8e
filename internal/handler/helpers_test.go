package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ugaemi/arena-server/internal/room"
	"github.com/ugaemi/arena-server/internal/ws"
)

func mockClient(id string) *ws.Client {
	return &ws.Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}
}

func drainMessages(client *ws.Client) []ws.Message {
	var msgs []ws.Message
	for {
		select {
		case data := <-client.Send:
			var msg ws.Message
			if err := json.Unmarshal(data, &msg); err == nil {
				msgs = append(msgs, msg)
			}
		default:
			return msgs
		}
	}
}

func findMessageByType(msgs []ws.Message, msgType string) *ws.Message {
	for _, m := range msgs {
		if m.Type == msgType {
			return &m
		}
	}
	return nil
}

func countMessages(msgs []ws.Message, msgType string) int {
	n := 0
	for _, m := range msgs {
		if m.Type == msgType {
			n++
		}
	}
	return n
}

// send routes a message from client through router as if it came off the
// wire.
func send(t *testing.T, router *Router, client *ws.Client, msgType string, payload any) {
	t.Helper()
	msg, err := ws.NewMessage(msgType, payload)
	require.NoError(t, err)
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	router.HandleMessage(&ws.ClientMessage{Client: client, Data: data})
}

func decode[T any](t *testing.T, msg *ws.Message) T {
	t.Helper()
	require.NotNil(t, msg)
	var v T
	require.NoError(t, json.Unmarshal(msg.Data, &v))
	return v
}

type joinedPayload struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	PlayerID  string `json:"player_id"`
	IsCreator bool   `json:"is_creator"`
	CreatorID string `json:"creator_id"`
	Players   []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"players"`
}

type noticePayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// setupLobby creates a room owned by c1 and has c2 join it.
func setupLobby(t *testing.T) (*Router, *room.Manager, *ws.Client, *ws.Client, string) {
	t.Helper()
	rm := room.NewManager(room.DefaultSettings())
	router := NewRouter(rm)
	c1, c2 := mockClient("c1"), mockClient("c2")

	send(t, router, c1, ws.TypeCreateRoom, map[string]any{"name": "Arena", "capacity": 2, "display_name": "Alice"})
	created := decode[joinedPayload](t, findMessageByType(drainMessages(c1), ws.TypeRoomCreated))

	send(t, router, c2, ws.TypeJoinRoom, map[string]any{"code": created.Code, "display_name": "Bob"})
	require.NotNil(t, findMessageByType(drainMessages(c2), ws.TypeJoinedRoom))
	drainMessages(c1)
	return router, rm, c1, c2, created.Code
}

// setupMatch starts a match between c1 and c2.
func setupMatch(t *testing.T) (*Router, *room.Room, *ws.Client, *ws.Client) {
	t.Helper()
	router, rm, c1, c2, code := setupLobby(t)
	send(t, router, c1, ws.TypeToggleReady, nil)
	send(t, router, c2, ws.TypeToggleReady, nil)
	send(t, router, c1, ws.TypeStartMatch, nil)

	r := rm.GetRoom(code)
	require.NotNil(t, r)
	require.NotNil(t, findMessageByType(drainMessages(c1), ws.TypeMatchStarted))
	drainMessages(c2)
	return router, r, c1, c2
}
