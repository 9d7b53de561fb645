// internal/words/words.go
//
// Loads the dictionary the engine plays against.
//
// Sources (LoadFromEnv):
//   1. WORDS_FILE=/path/to/words.txt, one word per line.
//   2. Otherwise the dictionary embedded in the assets package.
//
// Normalization:
//   • Lines are trimmed; blank lines and '#' comments are skipped.
//   • Words are lowercased unless WORDS_LOWERCASE=0. The engine itself is
//     case-sensitive, so this decides the dictionary's case convention.
//   • Duplicates are dropped, first occurrence wins.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/evilhangman/assets"
)

// ErrEmpty is returned when a source yields no words.
var ErrEmpty = errors.New("words: dictionary is empty")

// Source describes where the dictionary came from.
type Source struct {
	Path      string // "" for the embedded dictionary
	Lowercase bool
}

func (s Source) String() string {
	if s.Path == "" {
		return "embedded"
	}
	return s.Path
}

// SourceFromEnv reads WORDS_FILE and WORDS_LOWERCASE.
func SourceFromEnv() Source {
	return Source{
		Path:      os.Getenv("WORDS_FILE"),
		Lowercase: os.Getenv("WORDS_LOWERCASE") != "0",
	}
}

// LoadFromEnv loads the dictionary described by SourceFromEnv.
func LoadFromEnv() ([]string, Source, error) {
	src := SourceFromEnv()
	ws, err := Load(src)
	return ws, src, err
}

// Load reads and normalizes the words of src.
func Load(src Source) ([]string, error) {
	if src.Path == "" {
		ws, err := Read(assets.Dictionary(), src.Lowercase)
		if err != nil {
			return nil, fmt.Errorf("words: embedded dictionary: %w", err)
		}
		return nonEmpty(ws)
	}

	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	defer f.Close()
	ws, err := Read(f, src.Lowercase)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", src.Path, err)
	}
	return nonEmpty(ws)
}

// Read scans one word per line from r.
func Read(r io.Reader, lowercase bool) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return normalize(lines, lowercase), nil
}

// normalize trims, filters comments, optionally lowercases and de-duplicates.
func normalize(lines []string, lowercase bool) []string {
	return lo.Uniq(lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		w := strings.TrimSpace(line)
		if w == "" || strings.HasPrefix(w, "#") {
			return "", false
		}
		if lowercase {
			w = strings.ToLower(w)
		}
		return w, true
	}))
}

func nonEmpty(ws []string) ([]string, error) {
	if len(ws) == 0 {
		return nil, ErrEmpty
	}
	return ws, nil
}
