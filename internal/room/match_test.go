package room

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/arena-server/internal/game"
	"github.com/ugaemi/arena-server/internal/ws"
)

func TestMove(t *testing.T) {
	r, _, _, _ := setupStartedRoom(t)

	require.NoError(t, r.Move("p1", 1020, 1000, 0.5))
	p, _ := r.Player("p1")
	assert.Equal(t, 1020.0, p.X)
	assert.Equal(t, 0.5, p.Angle)

	err := r.Move("p1", 1200, 1000, 0)
	assert.ErrorIs(t, err, game.ErrInvalidMovement)
	p, _ = r.Player("p1")
	assert.Equal(t, 1020.0, p.X, "rejected move must not change position")
	assert.Equal(t, int64(1), r.Metrics().MovesRejected)
}

func TestMove_IgnoredOutsideMatch(t *testing.T) {
	r, _ := newTestRoom(4)
	r.AddPlayer("p1", "A", mockClient("p1"))

	assert.ErrorIs(t, r.Move("p1", 0, 0, 0), game.ErrMatchNotStarted)
	assert.ErrorIs(t, r.Move("ghost", 0, 0, 0), game.ErrNotInRoom)
}

func TestFire_Cooldown(t *testing.T) {
	r, clk, c1, _ := setupStartedRoom(t)

	require.NoError(t, r.Fire("p1", 0))
	clk.Advance(100 * time.Millisecond)
	err := r.Fire("p1", 0)

	var cd *game.CooldownError
	require.True(t, errors.As(err, &cd))
	assert.ErrorIs(t, err, game.ErrCooldownActive)
	assert.Equal(t, int64(200), cd.RoundedMillis())

	p, _ := r.Player("p1")
	assert.Equal(t, game.MaxAmmo-1, p.Ammo)
	assert.Equal(t, 1, r.ProjectileCount())

	clk.Advance(200 * time.Millisecond)
	require.NoError(t, r.Fire("p1", 0))
	p, _ = r.Player("p1")
	assert.Equal(t, game.MaxAmmo-2, p.Ammo)

	msgs := drainMessages(c1)
	assert.Equal(t, 2, countMessages(msgs, ws.TypeProjectileSpawned))
	assert.Equal(t, 2, countMessages(msgs, ws.TypeAmmoUpdated))
}

func TestFire_SpawnsAtServerPosition(t *testing.T) {
	r, _, _, c2 := setupStartedRoom(t)

	require.NoError(t, r.Fire("p1", 0))

	msg := findMessageByType(drainMessages(c2), ws.TypeProjectileSpawned)
	require.NotNil(t, msg)
	var proj game.Projectile
	require.NoError(t, json.Unmarshal(msg.Data, &proj))
	assert.Equal(t, "p1", proj.OwnerID)
	assert.Equal(t, 1000.0, proj.X)
	assert.Equal(t, 1000.0, proj.Y)
	assert.InDelta(t, game.ProjectileSpeed, proj.VX, 1e-9)
}

func TestFire_OutOfAmmoThenReload(t *testing.T) {
	r, _, _, _ := setupStartedRoom(t)
	r.mu.Lock()
	r.players["p1"].Ammo = 0
	r.mu.Unlock()

	assert.ErrorIs(t, r.Fire("p1", 0), game.ErrOutOfAmmo)
	assert.Equal(t, 0, r.ProjectileCount())

	ammo, err := r.Reload("p1")
	require.NoError(t, err)
	assert.Equal(t, game.MaxAmmo, ammo)
	require.NoError(t, r.Fire("p1", 0))
}

func TestFire_RejectedBeforeStart(t *testing.T) {
	r, _ := newTestRoom(4)
	r.AddPlayer("p1", "A", mockClient("p1"))

	assert.ErrorIs(t, r.Fire("p1", 0), game.ErrMatchNotStarted)
	_, err := r.Reload("p1")
	assert.ErrorIs(t, err, game.ErrMatchNotStarted)
}

func TestPhysicsTick_KillAndRespawn(t *testing.T) {
	r, clk, c1, _ := setupStartedRoom(t)

	shootUntilDead(t, r, clk)
	assert.ErrorIs(t, r.Fire("p2", 0), game.ErrPlayerDead)
	assert.ErrorIs(t, r.Move("p2", 1100, 1000, 0), game.ErrPlayerDead)

	p1, _ := r.Player("p1")
	p2, _ := r.Player("p2")
	assert.Equal(t, 1, p1.Score)
	assert.Equal(t, 1, p2.Deaths)
	assert.Equal(t, 0, p2.Health)
	assert.Equal(t, 0, r.ProjectileCount())

	msgs := drainMessages(c1)
	assert.Equal(t, 4, countMessages(msgs, ws.TypePlayerDamaged))
	died := findMessageByType(msgs, ws.TypePlayerDied)
	require.NotNil(t, died)
	var ev struct {
		VictimID    string `json:"victim_id"`
		KillerID    string `json:"killer_id"`
		KillerName  string `json:"killer_name"`
		KillerScore int    `json:"killer_score"`
	}
	require.NoError(t, json.Unmarshal(died.Data, &ev))
	assert.Equal(t, "p2", ev.VictimID)
	assert.Equal(t, "p1", ev.KillerID)
	assert.Equal(t, "Alice", ev.KillerName)
	assert.Equal(t, 1, ev.KillerScore)

	require.Eventually(t, func() bool {
		p, _ := r.Player("p2")
		return p.Alive
	}, time.Second, 10*time.Millisecond)

	p2, _ = r.Player("p2")
	assert.Equal(t, game.MaxHealth, p2.Health)
	assert.Equal(t, game.MaxAmmo, p2.Ammo)
	assert.Equal(t, 1, p2.Deaths, "respawn keeps the death count")
	assert.NotNil(t, findMessageByType(drainMessages(c1), ws.TypePlayerRespawned))
}

func TestPhysicsTick_ProjectilesSnapshot(t *testing.T) {
	r, clk, c1, _ := setupStartedRoom(t)

	r.PhysicsTick(clk.Now())
	assert.Nil(t, findMessageByType(drainMessages(c1), ws.TypeProjectilesSnapshot), "no snapshot without projectiles")

	require.NoError(t, r.Fire("p1", 0))
	drainMessages(c1)
	r.PhysicsTick(clk.Now())

	msg := findMessageByType(drainMessages(c1), ws.TypeProjectilesSnapshot)
	require.NotNil(t, msg)
	var snap struct {
		Projectiles []game.Projectile `json:"projectiles"`
	}
	require.NoError(t, json.Unmarshal(msg.Data, &snap))
	require.Len(t, snap.Projectiles, 1)
	assert.InDelta(t, 1000+game.ProjectileSpeed, snap.Projectiles[0].X, 1e-9)
}

func TestRemovePlayer_CancelsPendingRespawn(t *testing.T) {
	r, clk, c1, _ := setupStartedRoom(t)
	r.settings.RespawnDelay = 200 * time.Millisecond
	shootUntilDead(t, r, clk)

	r.RemovePlayer("p2")

	r.mu.Lock()
	assert.Empty(t, r.respawns)
	r.mu.Unlock()

	time.Sleep(400 * time.Millisecond)
	assert.Nil(t, findMessageByType(drainMessages(c1), ws.TypePlayerRespawned))
}

func TestClose_CancelsPendingRespawn(t *testing.T) {
	r, clk, c1, _ := setupStartedRoom(t)
	r.settings.RespawnDelay = 200 * time.Millisecond
	shootUntilDead(t, r, clk)

	r.Close()

	time.Sleep(400 * time.Millisecond)
	p2, _ := r.Player("p2")
	assert.False(t, p2.Alive)
	assert.Nil(t, findMessageByType(drainMessages(c1), ws.TypePlayerRespawned))
}

func TestBroadcastTick_OnlyLivePlayers(t *testing.T) {
	r, _, c1, _ := setupStartedRoom(t)
	r.mu.Lock()
	r.players["p2"].Kill(time.Second)
	r.mu.Unlock()

	r.BroadcastTick(time.Now())

	msg := findMessageByType(drainMessages(c1), ws.TypePlayersUpdated)
	require.NotNil(t, msg)
	var upd struct {
		Players []struct {
			ID string `json:"id"`
		} `json:"players"`
	}
	require.NoError(t, json.Unmarshal(msg.Data, &upd))
	require.Len(t, upd.Players, 1)
	assert.Equal(t, "p1", upd.Players[0].ID)
}

func TestCountdownTick_EndsMatchWithStandings(t *testing.T) {
	r, clk, c1, _ := setupStartedRoom(t)
	start := clk.Now()

	r.mu.Lock()
	r.players["p1"].Score, r.players["p1"].Deaths = 2, 1
	r.players["p2"].Score, r.players["p2"].Deaths = 2, 0
	r.mu.Unlock()

	r.CountdownTick(start.Add(299*time.Second + 500*time.Millisecond))
	assert.Equal(t, 1, r.Remaining())
	assert.Equal(t, game.StateInProgress, r.State())

	r.CountdownTick(start.Add(300 * time.Second))
	assert.Equal(t, 0, r.Remaining())
	assert.Equal(t, game.StateEnded, r.State())

	msg := findMessageByType(drainMessages(c1), ws.TypeMatchEnded)
	require.NotNil(t, msg)
	var ended struct {
		Players []game.Standing `json:"players"`
		Reason  string          `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(msg.Data, &ended))
	assert.Equal(t, "time", ended.Reason)
	require.Len(t, ended.Players, 2)
	assert.Equal(t, "p2", ended.Players[0].ID, "fewer deaths wins a score tie")
	assert.Equal(t, "p1", ended.Players[1].ID)

	// No further ticks once ended.
	r.CountdownTick(start.Add(301 * time.Second))
	assert.Nil(t, findMessageByType(drainMessages(c1), ws.TypeCountdownTick))
	assert.ErrorIs(t, r.Fire("p1", 0), game.ErrMatchNotStarted)
}

func TestDisconnectDuringBroadcast(t *testing.T) {
	r, clk, _, c2 := setupStartedRoom(t)

	hub := ws.NewHub(0)
	hub.OnDisconnect = func(c *ws.Client) { r.RemovePlayer(c.ID) }
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)
	hub.Register <- c2

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
				r.BroadcastTick(clk.Now())
				r.PhysicsTick(clk.Now())
			}
		}
	}()

	hub.Unregister <- c2
	require.Eventually(t, func() bool {
		_, ok := r.Player("p2")
		return !ok
	}, time.Second, 5*time.Millisecond)
	close(stop)
	<-done

	assert.Equal(t, 1, r.PlayerCount())
	assert.NotPanics(t, func() { r.BroadcastTick(clk.Now()) })
}
