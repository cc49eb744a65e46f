package domain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/louisbranch/signbridge/internal/gesture"
)

type stubPhrases struct {
	phrases []gesture.Phrase
	err     error
	calls   int
}

func (s *stubPhrases) FetchAllPhrases(context.Context) ([]gesture.Phrase, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.phrases, nil
}

type stubLetters struct {
	letters map[string]gesture.Letter
	err     error
}

func (s *stubLetters) FetchLetter(_ context.Context, letter string) (gesture.Letter, error) {
	if s.err != nil {
		return gesture.Letter{}, s.err
	}
	entry, ok := s.letters[strings.ToUpper(letter)]
	if !ok {
		return gesture.Letter{}, ErrNotFound
	}
	return entry, nil
}

type stubFallback struct {
	phrases map[string]gesture.Phrase
	letters map[string]gesture.Letter
}

func (s *stubFallback) LookupPhrase(normalizedName string) (gesture.Phrase, bool) {
	phrase, ok := s.phrases[normalizedName]
	return phrase, ok
}

func (s *stubFallback) LookupLetter(letter string) (gesture.Letter, bool) {
	entry, ok := s.letters[strings.ToUpper(letter)]
	return entry, ok
}

func letterEntry(letter string) gesture.Letter {
	return gesture.Letter{
		Letter: letter,
		Steps: []gesture.Step{{
			Handshape:   "pose-" + strings.ToLower(letter),
			Orientation: "palm-out",
			Location:    "neutral-space",
			Motion:      gesture.MotionNone,
			HoldMillis:  400,
		}},
	}
}

func letterSet(letters ...string) map[string]gesture.Letter {
	out := make(map[string]gesture.Letter, len(letters))
	for _, letter := range letters {
		out[letter] = letterEntry(letter)
	}
	return out
}

func helloPhrase() gesture.Phrase {
	return gesture.Phrase{
		Key:         "PHRASE_HELLO",
		DisplayName: "hello",
		Steps: []gesture.Step{{
			Handshape:   "flat-hand",
			Orientation: "palm-out",
			Location:    "near-temple",
			Motion:      "small-outward-wave",
			HoldMillis:  700,
		}},
	}
}

func TestResolveBlankInput(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(nil, nil, nil)
	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := resolver.Resolve(context.Background(), text); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Resolve(%q) error = %v, want ErrInvalidInput", text, err)
		}
	}
}

func TestResolvePhraseMatchWins(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(
		&stubPhrases{phrases: []gesture.Phrase{helloPhrase()}},
		&stubLetters{letters: letterSet("H", "E", "L", "O")},
		nil,
	)

	result, err := resolver.Resolve(context.Background(), "  HeLLo!! ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.NormalizedText != "hello" {
		t.Fatalf("NormalizedText = %q, want %q", result.NormalizedText, "hello")
	}
	if result.Source != SourcePhrase {
		t.Fatalf("Source = %q, want %q", result.Source, SourcePhrase)
	}
	if len(result.Actions) != 1 {
		t.Fatalf("len(Actions) = %d, want 1", len(result.Actions))
	}
	action := result.Actions[0]
	if action.Kind != KindPhrase || action.Label != "hello" {
		t.Fatalf("action = %+v, want phrase labeled hello", action)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want none", result.Warnings)
	}
}

func TestResolveNoPartialPhraseMatch(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(
		&stubPhrases{phrases: []gesture.Phrase{helloPhrase()}},
		&stubLetters{letters: letterSet("H", "E", "L", "O", "S", "T", "R")},
		nil,
	)

	for _, text := range []string{"hell", "hellos", "say hello there"} {
		result, err := resolver.Resolve(context.Background(), text)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", text, err)
		}
		if result.Source != SourceSpelling {
			t.Fatalf("Resolve(%q) source = %q, want spelling", text, result.Source)
		}
	}
}

func TestResolvePhraseFallbackWhenUnavailable(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(
		&stubPhrases{err: ErrUnavailable},
		&stubLetters{err: ErrUnavailable},
		&stubFallback{phrases: map[string]gesture.Phrase{"thank you": {
			Key:         "PHRASE_THANK_YOU",
			DisplayName: "thank you",
			Steps:       helloPhrase().Steps,
		}}},
	)

	result, err := resolver.Resolve(context.Background(), "Thank You")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Source != SourcePhrase || len(result.Actions) != 1 {
		t.Fatalf("result = %+v, want one phrase action from fallback", result)
	}
}

func TestResolveSpellingFallbackCompleteness(t *testing.T) {
	t.Parallel()

	// Letter catalog unreachable; every letter of the input is mirrored.
	resolver := NewResolver(
		&stubPhrases{err: ErrUnavailable},
		&stubLetters{err: ErrUnavailable},
		&stubFallback{letters: letterSet("C", "A", "B")},
	)

	result, err := resolver.Resolve(context.Background(), "cab")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Source != SourceSpelling {
		t.Fatalf("Source = %q, want spelling", result.Source)
	}
	if len(result.Actions) != 3 {
		t.Fatalf("len(Actions) = %d, want 3", len(result.Actions))
	}
	for i, want := range []string{"C", "A", "B"} {
		if result.Actions[i].Label != want {
			t.Fatalf("Actions[%d].Label = %q, want %q", i, result.Actions[i].Label, want)
		}
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want none", result.Warnings)
	}
}

func TestResolveSkipsWhitespaceSilently(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(
		&stubPhrases{},
		&stubLetters{letters: letterSet("H", "I")},
		nil,
	)

	result, err := resolver.Resolve(context.Background(), "h i")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(result.Actions) != 2 {
		t.Fatalf("len(Actions) = %d, want 2", len(result.Actions))
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want none", result.Warnings)
	}
}

func TestResolveWarnsOnUnsupportedCharacters(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(
		&stubPhrases{},
		&stubLetters{letters: letterSet("A", "B")},
		nil,
	)

	result, err := resolver.Resolve(context.Background(), "ab42")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(result.Actions) != 2 {
		t.Fatalf("len(Actions) = %d, want 2", len(result.Actions))
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("Warnings = %v, want one per unsupported digit", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "'4'") || !strings.Contains(result.Warnings[1], "'2'") {
		t.Fatalf("Warnings = %v, want digit mentions in order", result.Warnings)
	}
}

func TestResolveAggregatesUnresolvedLetters(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(
		&stubPhrases{},
		&stubLetters{letters: letterSet("A")},
		nil,
	)

	result, err := resolver.Resolve(context.Background(), "aqqzq")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(result.Actions) != 1 {
		t.Fatalf("len(Actions) = %d, want 1", len(result.Actions))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one aggregated warning", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "q, z") {
		t.Fatalf("warning = %q, want sorted distinct letters q, z", result.Warnings[0])
	}
}

func TestResolveFailsWhenNothingResolves(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(&stubPhrases{}, &stubLetters{letters: letterSet()}, nil)

	for _, text := range []string{"123!!!", "qqq"} {
		if _, err := resolver.Resolve(context.Background(), text); !errors.Is(err, ErrNoTranslation) {
			t.Fatalf("Resolve(%q) error = %v, want ErrNoTranslation", text, err)
		}
	}
}

func TestResolvePreservesStepOrder(t *testing.T) {
	t.Parallel()

	phrase := gesture.Phrase{
		Key:         "PHRASE_HOW_ARE_YOU",
		DisplayName: "how are you",
		Steps: []gesture.Step{
			{Handshape: "curved-hands", Orientation: "palm-down", Location: "chest", Motion: "twist-together", HoldMillis: 800},
			{Handshape: "index-point", Orientation: "palm-forward", Location: "neutral-space", Motion: gesture.MotionNone, HoldMillis: 500},
		},
	}
	resolver := NewResolver(&stubPhrases{phrases: []gesture.Phrase{phrase}}, nil, nil)

	result, err := resolver.Resolve(context.Background(), "How are you?")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	steps := result.Actions[0].Steps
	if len(steps) != 2 || steps[0].Handshape != "curved-hands" || steps[1].Handshape != "index-point" {
		t.Fatalf("steps = %+v, want catalog order preserved", steps)
	}
}
