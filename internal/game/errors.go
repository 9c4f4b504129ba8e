package game

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRoomNotFound         = errors.New("room not found")
	ErrRoomFull             = errors.New("room is full")
	ErrMatchAlreadyStarted  = errors.New("match already started")
	ErrMatchEnded           = fmt.Errorf("%w: match has ended", ErrMatchAlreadyStarted)
	ErrMatchNotStarted      = errors.New("match is not in progress")
	ErrNotCreator           = errors.New("only the room creator can start the match")
	ErrNotEnoughPlayers     = errors.New("not enough players")
	ErrNotAllReady          = errors.New("not all players are ready")
	ErrNotInRoom            = errors.New("not in a room")
	ErrInvalidCharacterSlot = errors.New("invalid character slot")
	ErrCooldownActive       = errors.New("fire cooldown active")
	ErrOutOfAmmo            = errors.New("out of ammo")
	ErrPlayerDead           = errors.New("player is dead")
	ErrInvalidMovement      = errors.New("invalid movement")
)

// CooldownError reports a rejected shot together with the time left until
// the next shot is allowed. It matches ErrCooldownActive.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("fire cooldown active: wait %dms", e.RoundedMillis())
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}

// RoundedMillis returns the remaining wait rounded up to the next 100ms.
func (e *CooldownError) RoundedMillis() int64 {
	ms := e.Remaining.Milliseconds()
	if e.Remaining%time.Millisecond != 0 {
		ms++
	}
	return (ms + 99) / 100 * 100
}
