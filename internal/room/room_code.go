package room

import (
	"math/rand"
)

const codeLength = 6
const maxRetries = 100

// Letters and digits that cannot be confused with each other (no I, O, 0, 1).
var letters = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

// GenerateCode creates a random room code that taken reports as free.
// Every maxRetries collisions the code grows by one character, so the
// loop always terminates.
func GenerateCode(taken func(code string) bool) string {
	for attempt := 0; ; attempt++ {
		code := randomCode(codeLength + attempt/maxRetries)
		if !taken(code) {
			return code
		}
	}
}

func randomCode(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
