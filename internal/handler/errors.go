package handler

import (
	"errors"
	"fmt"

	"github.com/ugaemi/arena-server/internal/game"
	"github.com/ugaemi/arena-server/internal/ws"
)

const msgInternal = "internal error"

// userErrors maps sentinel errors to the text shown to players. Order
// matters: ErrMatchEnded must be checked before ErrMatchAlreadyStarted.
var userErrors = []struct {
	err  error
	text string
}{
	{game.ErrRoomNotFound, "room not found"},
	{game.ErrRoomFull, "room is full"},
	{game.ErrMatchEnded, "match has ended"},
	{game.ErrMatchAlreadyStarted, "match already started"},
	{game.ErrMatchNotStarted, "match is not in progress"},
	{game.ErrNotCreator, "only the room creator can start the match"},
	{game.ErrNotEnoughPlayers, fmt.Sprintf("at least %d players are needed", game.MinPlayers)},
	{game.ErrNotAllReady, "not all players are ready"},
	{game.ErrNotInRoom, "you are not in a room"},
	{game.ErrInvalidCharacterSlot, fmt.Sprintf("character must be between 1 and %d", game.CharacterCount)},
	{game.ErrOutOfAmmo, "out of ammo, reload first"},
	{game.ErrPlayerDead, "you are dead"},
}

// describe returns the player-facing text for err.
func describe(err error) string {
	var cd *game.CooldownError
	if errors.As(err, &cd) {
		return fmt.Sprintf("wait %dms before firing again", cd.RoundedMillis())
	}
	for _, ue := range userErrors {
		if errors.Is(err, ue.err) {
			return ue.text
		}
	}
	return msgInternal
}

// sendError reports a registry failure as an error message.
func sendError(client *ws.Client, err error) {
	client.SendMessage(ws.NewErrorMessage(describe(err)))
}

// sendNotice reports a rejected request as an error notice.
func sendNotice(client *ws.Client, err error) {
	client.SendMessage(ws.NewNotice(ws.NoticeError, describe(err)))
}
