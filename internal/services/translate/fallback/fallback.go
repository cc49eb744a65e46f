// Package fallback holds the local mirror the translate service consults
// when an upstream catalog is unreachable or has no entry. The mirror covers
// just enough phrases and letters that translation keeps producing output
// with zero reachable upstreams.
package fallback

import "github.com/louisbranch/signbridge/internal/gesture"

// Store is a read-only, process-lifetime mirror of a small catalog subset.
// It is immutable after construction and needs no synchronization.
type Store struct {
	phrases map[string]gesture.Phrase
	letters map[string]gesture.Letter
}

// NewStore builds the default mirror.
func NewStore() *Store {
	phrases := make(map[string]gesture.Phrase, len(mirrorPhrases))
	for _, phrase := range mirrorPhrases {
		phrases[phrase.DisplayName] = phrase
	}
	letters := make(map[string]gesture.Letter, len(mirrorLetters))
	for _, letter := range mirrorLetters {
		letters[letter.Letter] = letter
	}
	return &Store{phrases: phrases, letters: letters}
}

// LookupPhrase returns the mirrored phrase whose normalized display name
// equals normalizedName.
func (s *Store) LookupPhrase(normalizedName string) (gesture.Phrase, bool) {
	phrase, ok := s.phrases[normalizedName]
	if !ok {
		return gesture.Phrase{}, false
	}
	phrase.Steps = gesture.CloneSteps(phrase.Steps)
	return phrase, true
}

// LookupLetter returns the mirrored entry for a letter in any case.
func (s *Store) LookupLetter(letter string) (gesture.Letter, bool) {
	canonical, err := gesture.CanonicalLetter(letter)
	if err != nil {
		return gesture.Letter{}, false
	}
	entry, ok := s.letters[canonical]
	if !ok {
		return gesture.Letter{}, false
	}
	entry.Steps = gesture.CloneSteps(entry.Steps)
	return entry, true
}

// Letters lists the mirrored letters in declaration order, for diagnostics.
func (s *Store) Letters() []string {
	out := make([]string, 0, len(mirrorLetters))
	for _, letter := range mirrorLetters {
		out = append(out, letter.Letter)
	}
	return out
}

// Display names are stored pre-normalized so lookups never re-normalize.
var mirrorPhrases = []gesture.Phrase{
	{
		Key:         "PHRASE_HELLO",
		DisplayName: "hello",
		Steps: []gesture.Step{
			{Handshape: "flat-hand", Orientation: "palm-out", Location: "near-temple", Motion: "small-outward-wave", HoldMillis: 700},
		},
		Notes: "Fallback phrase",
	},
	{
		Key:         "PHRASE_HOW_ARE_YOU",
		DisplayName: "how are you",
		Steps: []gesture.Step{
			{Handshape: "curved-hands", Orientation: "palm-down", Location: "chest", Motion: "twist-together", HoldMillis: 800},
			{Handshape: "index-point", Orientation: "palm-forward", Location: "neutral-space", Motion: gesture.MotionNone, HoldMillis: 500},
		},
		Notes: "Fallback phrase",
	},
	{
		Key:         "PHRASE_DO_YOU_KNOW_ASL",
		DisplayName: "do you know asl",
		Steps: []gesture.Step{
			{Handshape: "flat-hand", Orientation: "palm-down", Location: "temple", Motion: "tap", HoldMillis: 500},
			{Handshape: "index-point", Orientation: "palm-forward", Location: "neutral-space", Motion: gesture.MotionNone, HoldMillis: 500},
			{Handshape: "a-s-l-sequence", Orientation: "varies", Location: "neutral-space", Motion: "spell", HoldMillis: 1200},
		},
		Notes: "Fallback phrase",
	},
	{
		Key:         "PHRASE_THANK_YOU",
		DisplayName: "thank you",
		Steps: []gesture.Step{
			{Handshape: "flat-hand", Orientation: "palm-in", Location: "chin", Motion: "move-forward", HoldMillis: 600},
		},
		Notes: "Fallback phrase",
	},
}

var mirrorLetters = []gesture.Letter{
	{Letter: "A", Steps: []gesture.Step{
		{Handshape: "fist", Orientation: "palm-out", Location: "neutral-space", Motion: gesture.MotionNone, HoldMillis: 400},
	}},
	{Letter: "B", Steps: []gesture.Step{
		{Handshape: "flat-hand-thumb-in", Orientation: "palm-out", Location: "neutral-space", Motion: gesture.MotionNone, HoldMillis: 400},
	}},
	{Letter: "C", Steps: []gesture.Step{
		{Handshape: "curved-C", Orientation: "palm-out", Location: "neutral-space", Motion: gesture.MotionNone, HoldMillis: 400},
	}},
	{Letter: "H", Steps: []gesture.Step{
		{Handshape: "index-middle-sideways", Orientation: "palm-in", Location: "neutral-space", Motion: gesture.MotionNone, HoldMillis: 400},
	}},
	{Letter: "I", Steps: []gesture.Step{
		{Handshape: "pinky-extended", Orientation: "palm-out", Location: "neutral-space", Motion: gesture.MotionNone, HoldMillis: 400},
	}},
	{Letter: "L", Steps: []gesture.Step{
		{Handshape: "L-shape", Orientation: "palm-out", Location: "neutral-space", Motion: gesture.MotionNone, HoldMillis: 400},
	}},
	{Letter: "Y", Steps: []gesture.Step{
		{Handshape: "thumb-pinky-out", Orientation: "palm-out", Location: "neutral-space", Motion: "shake-small", HoldMillis: 450},
	}},
}
