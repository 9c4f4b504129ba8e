package game

import (
	"cmp"
	"slices"
)

// Standing is one row of the final scoreboard.
type Standing struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Deaths    int    `json:"deaths"`
	Character int    `json:"character"`
}

// Standings ranks players by score, highest first. Equal scores are ordered
// by fewer deaths, then by their position in players.
func Standings(players []*Player) []Standing {
	rows := make([]Standing, 0, len(players))
	for _, p := range players {
		rows = append(rows, Standing{
			ID:        p.ID,
			Name:      p.Name,
			Score:     p.Score,
			Deaths:    p.Deaths,
			Character: p.Character,
		})
	}
	slices.SortStableFunc(rows, func(a, b Standing) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Deaths, b.Deaths)
	})
	return rows
}
