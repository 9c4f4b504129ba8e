package room

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/sasha-s/go-deadlock"

	"github.com/ugaemi/arena-server/internal/game"
	"github.com/ugaemi/arena-server/internal/ws"
)

// Room is one match: its roster, lifecycle state and the simulation that runs
// while the match is in progress. All fields are guarded by mu.
type Room struct {
	Code     string
	Name     string
	Capacity int

	creatorID string
	state     game.RoomState
	gameMap   *game.Map

	players map[string]*game.Player
	order   []string // player IDs in join order
	ready   map[string]bool
	clients map[string]*ws.Client

	projectiles []*game.Projectile
	world       *game.World
	pool        *game.ProjectilePool
	fireGate    *game.FireGate
	respawns    map[string]respawnTask

	startedAt time.Time
	remaining int // seconds

	settings Settings
	clock    func() time.Time
	metrics  Metrics

	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	mu deadlock.Mutex
}

type respawnTask struct {
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewRoom creates an empty room in the waiting state. Capacity is clamped to
// [MinPlayers, MaxCapacity].
func NewRoom(code, name string, capacity int, pool *game.ProjectilePool, settings Settings) *Room {
	capacity = max(game.MinPlayers, min(capacity, game.MaxCapacity))
	ctx, cancel := context.WithCancel(context.Background())
	r := &Room{
		Code:     code,
		Name:     name,
		Capacity: capacity,
		state:    game.StateWaiting,
		gameMap:  game.DefaultMap(),
		players:  make(map[string]*game.Player),
		ready:    make(map[string]bool),
		clients:  make(map[string]*ws.Client),
		pool:     pool,
		fireGate: game.NewFireGate(settings.FireCooldown),
		respawns: make(map[string]respawnTask),
		settings: settings,
		clock:    time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
	r.world = game.NewWorld(r.gameMap, r.players, pool, settings.RespawnDelay)
	r.remaining = int(settings.MatchDuration / time.Second)
	return r
}

// AddPlayer seats a new player in the room. The first player becomes the
// creator.
func (r *Room) AddPlayer(id, name string, client *ws.Client) (*game.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.closed:
		return nil, game.ErrRoomNotFound
	case r.state == game.StateEnded:
		return nil, game.ErrMatchEnded
	case r.state != game.StateWaiting:
		return nil, game.ErrMatchAlreadyStarted
	case len(r.players) >= r.Capacity:
		return nil, game.ErrRoomFull
	}

	p := game.NewPlayer(id, name)
	pos := game.ValidPosition(r.gameMap)
	p.SetPosition(pos.X, pos.Y)

	r.players[id] = p
	r.order = append(r.order, id)
	r.ready[id] = false
	r.clients[id] = client
	if r.creatorID == "" {
		r.creatorID = id
	}

	slog.Info("player joined room", "room", r.Code, "player", id, "players", len(r.players))
	r.broadcastRosterLocked()
	return p, nil
}

// RemovePlayer drops a player and everything the room tracks for them.
// It reports whether the room is now empty.
func (r *Room) RemovePlayer(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return len(r.players) == 0
	}

	r.cancelRespawnLocked(id)
	r.fireGate.Forget(id)
	delete(r.players, id)
	delete(r.ready, id)
	delete(r.clients, id)
	r.order = slices.DeleteFunc(r.order, func(pid string) bool { return pid == id })

	if r.creatorID == id {
		r.creatorID = ""
		if len(r.order) > 0 {
			r.creatorID = r.order[0]
		}
	}

	slog.Info("player left room", "room", r.Code, "player", id, "players", len(r.players))
	if len(r.players) == 0 {
		return true
	}

	r.broadcastLocked(ws.TypePlayerLeft, playerLeftMessage{ID: id})
	r.broadcastRosterLocked()
	return false
}

// ToggleReady flips a player's ready flag and returns the new value.
func (r *Room) ToggleReady(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return false, game.ErrNotInRoom
	}
	if err := r.waitingLocked(); err != nil {
		return false, err
	}

	r.ready[id] = !r.ready[id]
	r.broadcastRosterLocked()
	return r.ready[id], nil
}

// StartMatch moves the room from waiting to in progress. Only the creator may
// start, with at least MinPlayers seated and everyone ready.
func (r *Room) StartMatch(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return game.ErrNotInRoom
	}
	if id != r.creatorID {
		return game.ErrNotCreator
	}
	if err := r.waitingLocked(); err != nil {
		return err
	}
	if len(r.players) < game.MinPlayers {
		return game.ErrNotEnoughPlayers
	}
	for _, pid := range r.order {
		if !r.ready[pid] {
			return game.ErrNotAllReady
		}
	}

	r.state = game.StateStarting
	for _, p := range r.players {
		p.Reset(game.ValidPosition(r.gameMap))
	}
	r.releaseProjectilesLocked()
	r.cancelAllRespawnsLocked()
	r.fireGate.Reset()
	r.startedAt = r.clock()
	r.remaining = int(r.settings.MatchDuration / time.Second)
	r.state = game.StateInProgress

	slog.Info("match started", "room", r.Code, "players", len(r.players))
	r.broadcastLocked(ws.TypeMatchStarted, matchStartedMessage{
		Map:      r.gameMap,
		Players:  r.playerListLocked(),
		Duration: r.remaining,
	})
	return nil
}

// Move applies a client-reported position after anti-cheat validation.
// Moves from dead players or outside an active match are ignored.
func (r *Room) Move(id string, x, y, angle float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return game.ErrNotInRoom
	}
	if r.state != game.StateInProgress {
		return game.ErrMatchNotStarted
	}
	if !p.Alive {
		return game.ErrPlayerDead
	}
	if err := game.ValidateMove(p, r.gameMap, x, y); err != nil {
		r.metrics.MovesRejected.Add(1)
		slog.Warn("move rejected", "room", r.Code, "player", id, "x", x, "y", y, "error", err)
		return err
	}

	p.SetPosition(x, y)
	p.Angle = angle
	return nil
}

// Fire spawns a projectile at the shooter's authoritative position.
func (r *Room) Fire(id string, angle float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return game.ErrNotInRoom
	}
	if r.state != game.StateInProgress {
		return game.ErrMatchNotStarted
	}
	if !p.Alive {
		return game.ErrPlayerDead
	}
	if p.Ammo <= 0 {
		r.metrics.ShotsRejected.Add(1)
		return game.ErrOutOfAmmo
	}
	now := r.clock()
	if err := r.fireGate.Check(id, now); err != nil {
		r.metrics.ShotsRejected.Add(1)
		return err
	}

	r.fireGate.Record(id, now)
	if err := p.SpendAmmo(); err != nil {
		return err
	}
	p.Angle = angle
	proj := r.pool.Acquire(id, p.X, p.Y, angle)
	r.projectiles = append(r.projectiles, proj)
	r.metrics.ShotsAccepted.Add(1)

	r.broadcastLocked(ws.TypeProjectileSpawned, *proj)
	r.broadcastLocked(ws.TypeAmmoUpdated, ammoMessage{ID: id, Ammo: p.Ammo})
	return nil
}

// Reload refills the player's ammo and returns the new count.
func (r *Room) Reload(id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return 0, game.ErrNotInRoom
	}
	if r.state != game.StateInProgress {
		return 0, game.ErrMatchNotStarted
	}
	if !p.Alive {
		return 0, game.ErrPlayerDead
	}

	p.Reload()
	r.broadcastLocked(ws.TypeAmmoUpdated, ammoMessage{ID: id, Ammo: p.Ammo})
	return p.Ammo, nil
}

// ChangeCharacter sets the player's character slot.
func (r *Room) ChangeCharacter(id string, slot int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return game.ErrNotInRoom
	}
	if err := p.SetCharacter(slot); err != nil {
		return err
	}

	r.broadcastLocked(ws.TypeCharacterChanged, characterChangedMessage{ID: id, Character: slot})
	return nil
}

// PhysicsTick advances projectiles one step and broadcasts hits, deaths and
// the surviving projectiles.
func (r *Room) PhysicsTick(time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != game.StateInProgress {
		return
	}

	start := time.Now()
	hadProjectiles := len(r.projectiles) > 0
	res := r.world.Step(r.projectiles)
	r.projectiles = res.Active

	for _, hit := range res.Hits {
		r.broadcastLocked(ws.TypePlayerDamaged, playerDamagedMessage{
			ID:         hit.VictimID,
			Health:     hit.Health,
			AttackerID: hit.AttackerID,
		})
	}
	for _, kill := range res.Kills {
		r.handleKillLocked(kill)
	}
	r.metrics.Hits.Add(int64(len(res.Hits)))
	r.metrics.Kills.Add(int64(len(res.Kills)))

	if hadProjectiles || len(r.projectiles) > 0 {
		snapshot := make([]game.Projectile, len(r.projectiles))
		for i, proj := range r.projectiles {
			snapshot[i] = *proj
		}
		r.broadcastLocked(ws.TypeProjectilesSnapshot, projectilesMessage{Projectiles: snapshot})
	}
	r.metrics.addTick(time.Since(start).Nanoseconds())
}

// BroadcastTick sends the positions of all live players.
func (r *Room) BroadcastTick(time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != game.StateInProgress {
		return
	}

	entries := make([]playerStateEntry, 0, len(r.players))
	for _, id := range r.order {
		p := r.players[id]
		if !p.Alive {
			continue
		}
		entries = append(entries, playerStateEntry{
			ID:        p.ID,
			X:         p.X,
			Y:         p.Y,
			Angle:     p.Angle,
			Health:    p.Health,
			Character: p.Character,
		})
	}
	r.broadcastLocked(ws.TypePlayersUpdated, playersUpdatedMessage{Players: entries})
}

// CountdownTick recomputes the remaining match time from the start time and
// ends the match when it runs out.
func (r *Room) CountdownTick(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != game.StateInProgress {
		return
	}

	elapsed := int(now.Sub(r.startedAt) / time.Second)
	r.remaining = max(0, int(r.settings.MatchDuration/time.Second)-elapsed)
	r.broadcastLocked(ws.TypeCountdownTick, countdownMessage{Remaining: r.remaining})

	if r.remaining <= 0 {
		r.endMatchLocked(game.EndTimeUp)
	}
}

// Close stops all pending work. The room accepts nothing afterwards.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.cancelAllRespawnsLocked()
	r.releaseProjectilesLocked()
	r.cancel()
}

// State returns the current lifecycle state.
func (r *Room) State() game.RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// CreatorID returns the ID of the player allowed to start the match.
func (r *Room) CreatorID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creatorID
}

// PlayerCount returns the number of seated players.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Remaining returns the seconds left in the match as of the last countdown.
func (r *Room) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Player returns a copy of a player's state.
func (r *Room) Player(id string) (game.Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return game.Player{}, false
	}
	return *p, true
}

// ProjectileCount returns the number of projectiles in flight.
func (r *Room) ProjectileCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.projectiles)
}

// Snapshot returns the lobby view of the room.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Info returns the room list summary.
func (r *Room) Info() Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Info{
		Code:     r.Code,
		Name:     r.Name,
		Players:  len(r.players),
		Capacity: r.Capacity,
		State:    r.state.String(),
	}
}

// Metrics returns the room's activity counters.
func (r *Room) Metrics() MetricsSnapshot {
	return r.metrics.Snapshot()
}

// SendToPlayer sends a message to a specific player.
func (r *Room) SendToPlayer(playerID string, msg ws.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if client, ok := r.clients[playerID]; ok && client != nil {
		client.SendMessage(msg)
	}
}

func (r *Room) handleKillLocked(kill game.KillEvent) {
	victim := r.players[kill.VictimID]
	r.fireGate.Forget(kill.VictimID)
	r.scheduleRespawnLocked(kill.VictimID)

	slog.Info("player killed", "room", r.Code, "victim", kill.VictimID, "killer", kill.KillerID)
	r.broadcastLocked(ws.TypePlayerDied, playerDiedMessage{
		VictimID:     kill.VictimID,
		VictimName:   victim.Name,
		KillerID:     kill.KillerID,
		KillerName:   kill.KillerName,
		KillerScore:  kill.KillerScore,
		RespawnDelay: victim.RespawnRemaining,
	})
}

func (r *Room) scheduleRespawnLocked(id string) {
	r.cancelRespawnLocked(id)
	ctx, cancel := context.WithCancel(r.ctx)
	timer := time.AfterFunc(r.settings.RespawnDelay, func() {
		r.respawn(ctx, id)
	})
	r.respawns[id] = respawnTask{timer: timer, cancel: cancel}
}

func (r *Room) respawn(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	r.cancelRespawnLocked(id)

	p, ok := r.players[id]
	if !ok || r.state != game.StateInProgress || p.Alive {
		return
	}

	p.Respawn(game.ValidPosition(r.gameMap))
	r.fireGate.Forget(id)
	slog.Debug("player respawned", "room", r.Code, "player", id)
	r.broadcastLocked(ws.TypePlayerRespawned, playerRespawnedMessage{
		ID:     p.ID,
		Name:   p.Name,
		X:      p.X,
		Y:      p.Y,
		Health: p.Health,
		Ammo:   p.Ammo,
	})
}

func (r *Room) cancelRespawnLocked(id string) {
	task, ok := r.respawns[id]
	if !ok {
		return
	}
	task.timer.Stop()
	task.cancel()
	delete(r.respawns, id)
}

func (r *Room) cancelAllRespawnsLocked() {
	for id := range r.respawns {
		r.cancelRespawnLocked(id)
	}
}

func (r *Room) releaseProjectilesLocked() {
	for i, proj := range r.projectiles {
		r.pool.Release(proj)
		r.projectiles[i] = nil
	}
	r.projectiles = r.projectiles[:0]
}

func (r *Room) endMatchLocked(reason game.EndReason) {
	r.state = game.StateEnded
	r.releaseProjectilesLocked()
	r.cancelAllRespawnsLocked()
	r.fireGate.Reset()

	ordered := make([]*game.Player, 0, len(r.order))
	for _, id := range r.order {
		ordered = append(ordered, r.players[id])
	}
	standings := game.Standings(ordered)

	slog.Info("match ended", "room", r.Code, "reason", reason)
	r.broadcastLocked(ws.TypeMatchEnded, matchEndedMessage{Players: standings, Reason: reason})
}

func (r *Room) waitingLocked() error {
	switch r.state {
	case game.StateWaiting:
		return nil
	case game.StateEnded:
		return game.ErrMatchEnded
	default:
		return game.ErrMatchAlreadyStarted
	}
}

func (r *Room) playerListLocked() []game.Player {
	players := make([]game.Player, 0, len(r.order))
	for _, id := range r.order {
		players = append(players, *r.players[id])
	}
	return players
}

func (r *Room) snapshotLocked() Snapshot {
	ready := make(map[string]bool, len(r.ready))
	for id, v := range r.ready {
		ready[id] = v
	}
	return Snapshot{
		Code:      r.Code,
		Name:      r.Name,
		Capacity:  r.Capacity,
		State:     r.state.String(),
		CreatorID: r.creatorID,
		Players:   r.playerListLocked(),
		Ready:     ready,
	}
}

func (r *Room) broadcastRosterLocked() {
	r.broadcastLocked(ws.TypeRoomUpdated, r.snapshotLocked())
}

// broadcastLocked sends a message to every client in the room.
// Caller must hold r.mu.
func (r *Room) broadcastLocked(msgType string, payload any) {
	msg, err := ws.NewMessage(msgType, payload)
	if err != nil {
		slog.Error("failed to build message", "room", r.Code, "type", msgType, "error", err)
		return
	}
	for _, client := range r.clients {
		if client != nil {
			client.SendMessage(msg)
		}
	}
}
