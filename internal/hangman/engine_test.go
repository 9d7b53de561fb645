package hangman

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"
	"unicode/utf8"
)

// grid has two equal-sized families for each of the letters a, c and e.
var grid = []string{"ace", "acf", "ade", "adf", "bce", "bcf", "bde", "bdf"}

func mustEngine(t *testing.T, words []string, opts ...Option) *Engine {
	t.Helper()
	e, err := New(words, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func mustGuess(t *testing.T, e *Engine, r rune) map[string]int {
	t.Helper()
	counts, err := e.MakeGuess(r)
	if err != nil {
		t.Fatalf("MakeGuess(%q): %v", r, err)
	}
	return counts
}

func TestNewEmptyDictionary(t *testing.T) {
	for _, words := range [][]string{nil, {}, {""}} {
		if _, err := New(words); !errors.Is(err, ErrEmptyDictionary) {
			t.Errorf("New(%q) error = %v, want ErrEmptyDictionary", words, err)
		}
	}
}

func TestCountByLength(t *testing.T) {
	e := mustEngine(t, []string{"a", "be", "at", "cat", "at", "héllo"})
	cases := map[int]int{-1: 0, 0: 0, 1: 1, 2: 2, 3: 1, 4: 0, 5: 1}
	for n, want := range cases {
		if got := e.CountByLength(n); got != want {
			t.Errorf("CountByLength(%d) = %d, want %d", n, got, want)
		}
	}
	if got := e.dict.Lengths(); !reflect.DeepEqual(got, []int{1, 2, 3, 5}) {
		t.Errorf("Lengths = %v", got)
	}
}

func TestStartRoundInvalid(t *testing.T) {
	e := mustEngine(t, []string{"cat", "dog"})
	cases := []struct {
		name           string
		length, wrongs int
		d              Difficulty
	}{
		{"no words of length", 4, 5, Hard},
		{"zero length", 0, 5, Hard},
		{"no wrong guesses", 3, 0, Hard},
		{"unknown difficulty", 3, 5, Difficulty(0)},
		{"difficulty out of range", 3, 5, Difficulty(7)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := e.StartRound(tc.length, tc.wrongs, tc.d); !errors.Is(err, ErrInvalidRoundConfig) {
				t.Errorf("StartRound error = %v, want ErrInvalidRoundConfig", err)
			}
			if e.InRound() {
				t.Error("failed StartRound left a round in progress")
			}
		})
	}
}

func TestOperationsBeforeRound(t *testing.T) {
	e := mustEngine(t, []string{"cat"})
	if _, err := e.MakeGuess('a'); !errors.Is(err, ErrNoRound) {
		t.Errorf("MakeGuess error = %v, want ErrNoRound", err)
	}
	if _, err := e.ResolveSecret(); !errors.Is(err, ErrNoRound) {
		t.Errorf("ResolveSecret error = %v, want ErrNoRound", err)
	}
	if e.GuessedLetters() != "[]" || e.Pattern() != "" || e.LiveWordCount() != 0 {
		t.Errorf("unexpected zero state: %q %q %d", e.GuessedLetters(), e.Pattern(), e.LiveWordCount())
	}
}

func TestCatCanCarScenario(t *testing.T) {
	e := mustEngine(t, []string{"cat", "can", "car"})
	if err := e.StartRound(3, 5, Hard); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if e.Pattern() != "---" || e.LiveWordCount() != 3 {
		t.Fatalf("start: pattern %q live %d", e.Pattern(), e.LiveWordCount())
	}

	steps := []struct {
		letter    rune
		counts    map[string]int
		pattern   string
		remaining int
		live      int
	}{
		{'a', map[string]int{"-a-": 3}, "-a-", 5, 3},
		{'c', map[string]int{"ca-": 3}, "ca-", 5, 3},
		{'t', map[string]int{"cat": 1, "ca-": 2}, "ca-", 4, 2},
	}
	for _, s := range steps {
		counts := mustGuess(t, e, s.letter)
		if !reflect.DeepEqual(counts, s.counts) {
			t.Errorf("guess %q: counts %v, want %v", s.letter, counts, s.counts)
		}
		if e.Pattern() != s.pattern || e.RemainingWrongGuesses() != s.remaining || e.LiveWordCount() != s.live {
			t.Errorf("guess %q: pattern %q remaining %d live %d; want %q %d %d",
				s.letter, e.Pattern(), e.RemainingWrongGuesses(), e.LiveWordCount(),
				s.pattern, s.remaining, s.live)
		}
	}
	if got := e.GuessedLetters(); got != "[a, c, t]" {
		t.Errorf("GuessedLetters = %q", got)
	}
	if got := e.LiveWords(); !reflect.DeepEqual(got, []string{"can", "car"}) {
		t.Errorf("LiveWords = %v", got)
	}
}

func TestEasyAlternates(t *testing.T) {
	e := mustEngine(t, grid)
	if err := e.StartRound(3, 6, Easy); err != nil {
		t.Fatal(err)
	}
	steps := []struct {
		letter    rune
		pattern   string
		live      []string
		remaining int
	}{
		{'a', "---", []string{"bce", "bcf", "bde", "bdf"}, 5}, // 1st: hardest
		{'c', "-c-", []string{"bce", "bcf"}, 5},               // 2nd: second hardest
		{'e', "-c-", []string{"bcf"}, 4},                      // 3rd: hardest
		{'f', "-cf", []string{"bcf"}, 4},                      // 4th: single family
	}
	for _, s := range steps {
		mustGuess(t, e, s.letter)
		if e.Pattern() != s.pattern || !reflect.DeepEqual(e.LiveWords(), s.live) || e.RemainingWrongGuesses() != s.remaining {
			t.Errorf("guess %q: pattern %q live %v remaining %d; want %q %v %d",
				s.letter, e.Pattern(), e.LiveWords(), e.RemainingWrongGuesses(), s.pattern, s.live, s.remaining)
		}
	}
}

func TestMediumYieldsEveryFourthGuess(t *testing.T) {
	e := mustEngine(t, grid)
	if err := e.StartRound(3, 6, Medium); err != nil {
		t.Fatal(err)
	}
	for _, r := range "azy" {
		mustGuess(t, e, r)
	}
	if e.Pattern() != "---" || e.RemainingWrongGuesses() != 3 {
		t.Fatalf("after 3 guesses: pattern %q remaining %d", e.Pattern(), e.RemainingWrongGuesses())
	}
	mustGuess(t, e, 'c')
	if e.Pattern() != "-c-" || e.RemainingWrongGuesses() != 3 {
		t.Errorf("4th guess: pattern %q remaining %d, want -c- 3", e.Pattern(), e.RemainingWrongGuesses())
	}
}

func TestHardTieBreakSmallestPattern(t *testing.T) {
	e := mustEngine(t, []string{"ab", "ba"})
	if err := e.StartRound(2, 3, Hard); err != nil {
		t.Fatal(err)
	}
	mustGuess(t, e, 'a')
	if e.Pattern() != "-a" || !reflect.DeepEqual(e.LiveWords(), []string{"ba"}) {
		t.Errorf("pattern %q live %v, want -a [ba]", e.Pattern(), e.LiveWords())
	}
}

func TestDuplicateGuessLeavesStateUnchanged(t *testing.T) {
	var reports int
	e := mustEngine(t, []string{"cat", "can", "car"}, WithObserver(func(Report) { reports++ }))
	if err := e.StartRound(3, 5, Hard); err != nil {
		t.Fatal(err)
	}
	mustGuess(t, e, 't')
	pattern, remaining, live, guessed := e.Pattern(), e.RemainingWrongGuesses(), e.LiveWords(), e.GuessedLetters()

	if _, err := e.MakeGuess('t'); !errors.Is(err, ErrDuplicateGuess) {
		t.Fatalf("second MakeGuess error = %v, want ErrDuplicateGuess", err)
	}
	if e.Pattern() != pattern || e.RemainingWrongGuesses() != remaining ||
		!reflect.DeepEqual(e.LiveWords(), live) || e.GuessedLetters() != guessed {
		t.Error("failed guess changed round state")
	}
	if reports != 1 {
		t.Errorf("observer called %d times, want 1", reports)
	}
	if !e.HasGuessed('t') || e.HasGuessed('x') {
		t.Error("HasGuessed mismatch")
	}
}

func TestStartRoundResets(t *testing.T) {
	e := mustEngine(t, []string{"cat", "can", "car", "dog"})
	if err := e.StartRound(3, 2, Hard); err != nil {
		t.Fatal(err)
	}
	mustGuess(t, e, 'x')
	mustGuess(t, e, 'a')
	if err := e.StartRound(3, 4, Easy); err != nil {
		t.Fatal(err)
	}
	if e.Pattern() != "---" || e.LiveWordCount() != 4 || e.RemainingWrongGuesses() != 4 ||
		e.GuessedLetters() != "[]" || e.Difficulty() != Easy {
		t.Errorf("round not reset: %q %d %d %q %s",
			e.Pattern(), e.LiveWordCount(), e.RemainingWrongGuesses(), e.GuessedLetters(), e.Difficulty())
	}
}

func TestObserverReport(t *testing.T) {
	var got []Report
	e := mustEngine(t, grid, WithObserver(func(r Report) { got = append(got, r) }))
	if err := e.StartRound(3, 6, Easy); err != nil {
		t.Fatal(err)
	}
	mustGuess(t, e, 'a')
	mustGuess(t, e, 'c')
	want := []Report{
		{Letter: 'a', Number: 1, Difficulty: Easy, Pick: PickHardest, Pattern: "---", LiveWords: 4, Families: 2, Wrong: true},
		{Letter: 'c', Number: 2, Difficulty: Easy, Pick: PickSecondHardest, Pattern: "-c-", LiveWords: 2, Families: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reports = %+v, want %+v", got, want)
	}
}

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

func TestResolveSecret(t *testing.T) {
	e := mustEngine(t, []string{"cat", "can", "car"}, WithRand(fixedRand(1)))
	if err := e.StartRound(3, 5, Hard); err != nil {
		t.Fatal(err)
	}
	if w, err := e.ResolveSecret(); err != nil || w != "can" {
		t.Errorf("ResolveSecret = %q, %v; want can", w, err)
	}
	mustGuess(t, e, 'n')
	mustGuess(t, e, 'r')
	// Only "cat" is left once both n and r are rejected.
	if w, err := e.ResolveSecret(); err != nil || w != "cat" {
		t.Errorf("ResolveSecret = %q, %v; want cat", w, err)
	}

	e.round.live = nil
	if _, err := e.ResolveSecret(); !errors.Is(err, ErrNoLiveWords) {
		t.Errorf("ResolveSecret on empty set error = %v", err)
	}
}

func TestResolveSecretSeeded(t *testing.T) {
	resolve := func() string {
		e := mustEngine(t, grid, WithRand(rand.New(rand.NewPCG(7, 11))))
		if err := e.StartRound(3, 5, Hard); err != nil {
			t.Fatal(err)
		}
		w, err := e.ResolveSecret()
		if err != nil {
			t.Fatal(err)
		}
		return w
	}
	first := resolve()
	if again := resolve(); again != first {
		t.Errorf("seeded resolution not deterministic: %q vs %q", first, again)
	}
	if !slices.Contains(grid, first) {
		t.Errorf("resolved %q not in dictionary", first)
	}
}

// TestRandomPlayProperties plays random rounds and checks the round rules
// that must hold after every guess.
func TestRandomPlayProperties(t *testing.T) {
	words := []string{
		"able", "acid", "aged", "also", "area", "army", "away", "baby", "back", "ball",
		"band", "bank", "base", "bath", "bear", "beat", "been", "beer", "bell", "belt",
		"best", "bill", "bird", "blow", "blue", "boat", "body", "bomb", "bond", "bone",
		"book", "boom", "born", "boss", "both", "bowl", "bulk", "burn", "bush", "busy",
		"call", "calm", "came", "camp", "card", "care", "case", "cash", "cast", "cell",
		"chat", "chip", "city", "club", "coal", "coat", "code", "cold", "come", "cook",
	}
	rng := rand.New(rand.NewPCG(42, 42))
	alphabet := []rune("abcdefghijklmnopqrstuvwxyz")

	for _, d := range []Difficulty{Easy, Medium, Hard} {
		for game := 0; game < 20; game++ {
			e := mustEngine(t, words, WithRand(rng))
			if err := e.StartRound(4, 10, d); err != nil {
				t.Fatal(err)
			}
			order := slices.Clone(alphabet)
			rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

			for _, letter := range order[:12] {
				before := e.LiveWords()
				prevPattern := e.Pattern()
				prevRemaining := e.RemainingWrongGuesses()

				guessed := e.round.guesses.Clone()
				guessed.Add(letter)
				partition := Partition(before, guessed)
				counts := mustGuess(t, e, letter)

				// Partition coverage: every live word lands in exactly one family.
				total := 0
				for p, ws := range partition {
					if counts[p] != len(ws) {
						t.Fatalf("counts[%q] = %d, want %d", p, counts[p], len(ws))
					}
					total += len(ws)
				}
				if total != len(before) || len(counts) != len(partition) {
					t.Fatalf("families cover %d words in %d groups, live had %d", total, len(counts), len(before))
				}

				// Monotone shrink.
				if e.LiveWordCount() > len(before) {
					t.Fatalf("live grew from %d to %d", len(before), e.LiveWordCount())
				}

				// HARD adopts the hardest family.
				if d == Hard {
					adopted := Family{Pattern: e.Pattern(), Words: e.LiveWords()}
					for p, ws := range partition {
						if p != adopted.Pattern && (Family{Pattern: p, Words: ws}).Harder(adopted) {
							t.Fatalf("HARD adopted %q but %q ranks harder", adopted.Pattern, p)
						}
					}
				}

				// Wrong-guess rule.
				wantRemaining := prevRemaining
				if e.Pattern() == prevPattern {
					wantRemaining--
				}
				if e.RemainingWrongGuesses() != wantRemaining {
					t.Fatalf("remaining %d, want %d (pattern %q -> %q)",
						e.RemainingWrongGuesses(), wantRemaining, prevPattern, e.Pattern())
				}

				// Resolution validity.
				secret, err := e.ResolveSecret()
				if err != nil {
					t.Fatal(err)
				}
				if !slices.Contains(e.LiveWords(), secret) || utf8.RuneCountInString(secret) != 4 {
					t.Fatalf("secret %q not a live word of length 4", secret)
				}
			}
		}
	}
}
