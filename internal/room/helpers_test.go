package room

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ugaemi/arena-server/internal/game"
	"github.com/ugaemi/arena-server/internal/ws"
)

// mockClient creates a ws.Client with a buffered Send channel for testing.
func mockClient(id string) *ws.Client {
	return &ws.Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}
}

// drainMessages reads all pending messages from a client's send channel.
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

// findMessageByType finds the first message of a given type.
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

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testSettings() Settings {
	s := DefaultSettings()
	s.RespawnDelay = 50 * time.Millisecond
	return s
}

func newTestRoom(capacity int) (*Room, *fakeClock) {
	r := NewRoom("TEST01", "Test", capacity, game.NewProjectilePool(game.PoolCapacity), testSettings())
	clk := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	r.clock = clk.Now
	return r, clk
}

// setupStartedRoom returns an in-progress room with p1 at (1000,1000) and p2
// 100px to its right on an open lane.
func setupStartedRoom(t *testing.T) (*Room, *fakeClock, *ws.Client, *ws.Client) {
	t.Helper()
	r, clk := newTestRoom(4)
	c1 := mockClient("p1")
	c2 := mockClient("p2")

	_, err := r.AddPlayer("p1", "Alice", c1)
	require.NoError(t, err)
	_, err = r.AddPlayer("p2", "Bob", c2)
	require.NoError(t, err)
	_, err = r.ToggleReady("p1")
	require.NoError(t, err)
	_, err = r.ToggleReady("p2")
	require.NoError(t, err)
	require.NoError(t, r.StartMatch("p1"))

	r.mu.Lock()
	r.players["p1"].SetPosition(1000, 1000)
	r.players["p2"].SetPosition(1100, 1000)
	r.mu.Unlock()

	drainMessages(c1)
	drainMessages(c2)
	return r, clk, c1, c2
}

// shootUntilDead fires at p2 from p1 until p2 dies.
func shootUntilDead(t *testing.T, r *Room, clk *fakeClock) {
	t.Helper()
	for range game.MaxHealth / game.ProjectileDamage {
		require.NoError(t, r.Fire("p1", 0))
		for range 10 {
			r.PhysicsTick(clk.Now())
		}
		clk.Advance(game.FireCooldown)
	}
	p2, _ := r.Player("p2")
	require.False(t, p2.Alive)
}
