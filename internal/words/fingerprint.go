// internal/words/fingerprint.go

package words

import (
	"encoding/hex"
	"slices"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint identifies a word list independently of its order:
// the hex blake2b-256 digest of the sorted words joined by newlines.
func Fingerprint(ws []string) string {
	sorted := slices.Clone(ws)
	slices.Sort(sorted)
	sum := blake2b.Sum256([]byte(strings.Join(sorted, "\n")))
	return hex.EncodeToString(sum[:])
}
