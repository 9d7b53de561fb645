package words

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/robalobadob/evilhangman/assets"
)

func TestReadNormalizes(t *testing.T) {
	in := "# header\n Cat \n\ndog\ncat\nDOG\n  # indented comment\nemu\n"
	got, err := Read(strings.NewReader(in), true)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"cat", "dog", "emu"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Read = %v, want %v", got, want)
	}

	got, _ = Read(strings.NewReader(in), false)
	if want := []string{"Cat", "dog", "cat", "DOG", "emu"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Read without lowercase = %v, want %v", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(Source{Path: path, Lowercase: true})
	if err != nil || !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("Load = %v, %v", got, err)
	}

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, []byte("# nothing\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(Source{Path: empty}); !errors.Is(err, ErrEmpty) {
		t.Errorf("Load(empty) error = %v, want ErrEmpty", err)
	}
	if _, err := Load(Source{Path: filepath.Join(dir, "missing.txt")}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestLoadEmbedded(t *testing.T) {
	got, err := Load(Source{Lowercase: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) < 100 {
		t.Errorf("embedded dictionary has only %d words", len(got))
	}
	for _, w := range got {
		if w != strings.ToLower(w) || strings.TrimSpace(w) != w || strings.HasPrefix(w, "#") {
			t.Fatalf("word %q not normalized", w)
		}
	}
}

func TestLoadEmbeddedUsesRead(t *testing.T) {
	got, err := Load(Source{Lowercase: true})
	if err != nil {
		t.Fatal(err)
	}
	want, err := Read(assets.Dictionary(), true)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load(embedded) has %d words, Read has %d", len(got), len(want))
	}
	seen := make(map[string]bool, len(got))
	for _, w := range got {
		if seen[w] {
			t.Fatalf("duplicate word %q", w)
		}
		seen[w] = true
	}
}

func TestSourceFromEnv(t *testing.T) {
	t.Setenv("WORDS_FILE", "/tmp/w.txt")
	t.Setenv("WORDS_LOWERCASE", "0")
	if src := SourceFromEnv(); src.Path != "/tmp/w.txt" || src.Lowercase {
		t.Errorf("SourceFromEnv = %+v", src)
	}
	t.Setenv("WORDS_FILE", "")
	t.Setenv("WORDS_LOWERCASE", "")
	if src := SourceFromEnv(); src.String() != "embedded" || !src.Lowercase {
		t.Errorf("SourceFromEnv = %+v", src)
	}
}

func TestFingerprintIgnoresOrder(t *testing.T) {
	a := Fingerprint([]string{"cat", "dog"})
	b := Fingerprint([]string{"dog", "cat"})
	c := Fingerprint([]string{"cat", "dot"})
	if a != b {
		t.Error("fingerprint depends on order")
	}
	if a == c {
		t.Error("different lists share a fingerprint")
	}
	if len(a) != 64 {
		t.Errorf("fingerprint length %d, want 64", len(a))
	}
}
