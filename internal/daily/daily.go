// internal/daily/daily.go
//
// Deterministic parameters for the daily round. Everyone playing on the
// same UTC date gets the same word length and, for the same sequence of
// guesses, the same resolved secret.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/evilhangman/internal/hangman"
)

const (
	MinLength  = 4
	MaxLength  = 12
	Difficulty = hangman.Medium
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// digest is HMAC-SHA256(salt, YYYY-MM-DD).
func digest(date time.Time, salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	return h.Sum(nil)
}

// Index returns a deterministic index in [0, n) for a date.
func Index(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	sum := digest(date, salt)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Seed returns a deterministic random source for a date.
func Seed(date time.Time, salt string) *rand.Rand {
	sum := digest(date, salt)
	return rand.New(rand.NewPCG(
		binary.BigEndian.Uint64(sum[8:16]),
		binary.BigEndian.Uint64(sum[16:24]),
	))
}

// Plan is the configuration of one day's round.
type Plan struct {
	Date       string
	Length     int
	Difficulty hangman.Difficulty
	Rand       *rand.Rand
}

// PlanFor picks the day's word length among the dictionary's lengths,
// preferring lengths within [MinLength, MaxLength] when any exist.
func PlanFor(date time.Time, salt string, dict *hangman.Dictionary) Plan {
	lengths := dict.Lengths()
	var preferred []int
	for _, l := range lengths {
		if l >= MinLength && l <= MaxLength {
			preferred = append(preferred, l)
		}
	}
	if len(preferred) > 0 {
		lengths = preferred
	}
	return Plan{
		Date:       DateKey(date),
		Length:     lengths[Index(date, salt, len(lengths))],
		Difficulty: Difficulty,
		Rand:       Seed(date, salt),
	}
}
