package room

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/ugaemi/arena-server/internal/game"
	"github.com/ugaemi/arena-server/internal/ws"
)

// Manager owns every live room and tracks which room each player sits in.
// Lock order is Manager then Room; a room never calls back into the manager.
type Manager struct {
	rooms       map[string]*Room  // code -> room
	playerRooms map[string]string // player ID -> code
	pool        *game.ProjectilePool
	settings    Settings
	mu          sync.RWMutex
}

// NewManager creates a room manager. All rooms share one projectile pool.
func NewManager(settings Settings) *Manager {
	return &Manager{
		rooms:       make(map[string]*Room),
		playerRooms: make(map[string]string),
		pool:        game.NewProjectilePool(game.PoolCapacity),
		settings:    settings,
	}
}

// CreateRoom registers a new room with a fresh code and seats the creator in
// it. A creator already seated elsewhere leaves that room first.
func (m *Manager) CreateRoom(name string, capacity int, playerID, displayName string, client *ws.Client) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.leaveLocked(playerID)

	code := GenerateCode(func(c string) bool {
		_, taken := m.rooms[c]
		return taken
	})
	r := NewRoom(code, name, capacity, m.pool, m.settings)
	if _, err := r.AddPlayer(playerID, displayName, client); err != nil {
		r.Close()
		return nil, err
	}

	m.rooms[code] = r
	m.playerRooms[playerID] = code
	slog.Info("room created", "code", code, "name", name, "capacity", r.Capacity, "creator", playerID)
	return r, nil
}

// JoinRoom seats a player in the room with the given code. Joining the room
// the player is already in is a no-op.
func (m *Manager) JoinRoom(code, playerID, displayName string, client *ws.Client) (*Room, error) {
	code = NormalizeCode(code)

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[code]
	if !ok {
		return nil, game.ErrRoomNotFound
	}
	if m.playerRooms[playerID] == code {
		return r, nil
	}
	if _, err := r.AddPlayer(playerID, displayName, client); err != nil {
		return nil, err
	}

	m.leaveLocked(playerID)
	m.playerRooms[playerID] = code
	return r, nil
}

// LeaveRoom removes a player from their room and tears the room down once it
// is empty. It returns the room that was left, or nil.
func (m *Manager) LeaveRoom(playerID string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaveLocked(playerID)
}

func (m *Manager) leaveLocked(playerID string) *Room {
	code, ok := m.playerRooms[playerID]
	if !ok {
		return nil
	}
	delete(m.playerRooms, playerID)

	r := m.rooms[code]
	if r == nil {
		return nil
	}
	if r.RemovePlayer(playerID) {
		r.Close()
		delete(m.rooms, code)
		slog.Info("room removed", "code", code)
	}
	return r
}

// GetRoom returns a room by its code.
func (m *Manager) GetRoom(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[NormalizeCode(code)]
}

// FindRoomByPlayerID finds the room containing a player.
func (m *Manager) FindRoomByPlayerID(playerID string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.playerRooms[playerID]
	if !ok {
		return nil
	}
	return m.rooms[code]
}

// Rooms returns a snapshot of all live rooms.
func (m *Manager) Rooms() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}

// RoomCount returns the number of active rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// ListWaiting returns the joinable rooms ordered by code.
func (m *Manager) ListWaiting() []Info {
	var infos []Info
	for _, r := range m.Rooms() {
		info := r.Info()
		if info.State == game.StateWaiting.String() && info.Players < info.Capacity {
			infos = append(infos, info)
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })
	return infos
}

// Pool returns the shared projectile pool.
func (m *Manager) Pool() *game.ProjectilePool {
	return m.pool
}

// Close tears down every room.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for code, r := range m.rooms {
		r.Close()
		delete(m.rooms, code)
	}
	clear(m.playerRooms)
}

// NormalizeCode canonicalizes user-entered room codes.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
