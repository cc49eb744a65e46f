// Package gesture defines the sign vocabulary shared by the signbridge
// services: atomic gesture steps, whole-phrase entries, and fingerspelling
// letter entries, plus the normalization rules that keep catalog data
// consistent across transports and storage.
package gesture

import (
	"errors"
	"strings"
)

// MotionNone is the motion value for a held pose with no movement.
const MotionNone = "none"

var (
	// ErrStepIncomplete indicates a step is missing handshape, orientation, or location.
	ErrStepIncomplete = errors.New("gesture step requires handshape, orientation, and location")
	// ErrNegativeHold indicates a step declares a negative hold duration.
	ErrNegativeHold = errors.New("gesture step hold duration cannot be negative")
	// ErrPhraseKeyEmpty indicates a phrase is missing its catalog key.
	ErrPhraseKeyEmpty = errors.New("phrase key is required")
	// ErrPhraseNameEmpty indicates a phrase is missing its display name.
	ErrPhraseNameEmpty = errors.New("phrase display name is required")
	// ErrNoSteps indicates an entry declares no gesture steps.
	ErrNoSteps = errors.New("at least one gesture step is required")
	// ErrInvalidLetter indicates a letter entry is not a single character A-Z.
	ErrInvalidLetter = errors.New("letter must be a single character A-Z")
)

// Step is one atomic pose/motion unit of a sign. Steps are value types and
// are never mutated after catalog load.
type Step struct {
	Handshape   string `json:"handshape" toml:"handshape"`
	Orientation string `json:"orientation" toml:"orientation"`
	Location    string `json:"location" toml:"location"`
	Motion      string `json:"motion" toml:"motion"`
	HoldMillis  int    `json:"hold_duration_ms" toml:"hold_duration_ms"`
}

// Phrase is a whole-phrase catalog entry. Identity is the key.
type Phrase struct {
	Key         string `json:"key" toml:"key"`
	DisplayName string `json:"display_name" toml:"display_name"`
	Steps       []Step `json:"steps" toml:"steps"`
	Notes       string `json:"notes,omitempty" toml:"notes,omitempty"`
}

// Letter is a fingerspelling catalog entry. Identity is the letter itself.
// Most letters hold a single pose; tracing letters such as J and Z carry
// one step per motion segment.
type Letter struct {
	Letter string `json:"letter" toml:"letter"`
	Steps  []Step `json:"steps" toml:"steps"`
	Notes  string `json:"notes,omitempty" toml:"notes,omitempty"`
}

// NormalizeStep trims step fields, defaults the motion to MotionNone, and
// validates the result.
func NormalizeStep(step Step) (Step, error) {
	step.Handshape = strings.TrimSpace(step.Handshape)
	step.Orientation = strings.TrimSpace(step.Orientation)
	step.Location = strings.TrimSpace(step.Location)
	step.Motion = strings.TrimSpace(step.Motion)
	if step.Motion == "" {
		step.Motion = MotionNone
	}
	if step.Handshape == "" || step.Orientation == "" || step.Location == "" {
		return Step{}, ErrStepIncomplete
	}
	if step.HoldMillis < 0 {
		return Step{}, ErrNegativeHold
	}
	return step, nil
}

// NormalizePhrase canonicalizes a phrase entry: the key is upper-cased, the
// display name and notes are trimmed, and every step is normalized.
func NormalizePhrase(phrase Phrase) (Phrase, error) {
	phrase.Key = CanonicalKey(phrase.Key)
	if phrase.Key == "" {
		return Phrase{}, ErrPhraseKeyEmpty
	}
	phrase.DisplayName = strings.TrimSpace(phrase.DisplayName)
	if phrase.DisplayName == "" {
		return Phrase{}, ErrPhraseNameEmpty
	}
	phrase.Notes = strings.TrimSpace(phrase.Notes)
	steps, err := normalizeSteps(phrase.Steps)
	if err != nil {
		return Phrase{}, err
	}
	phrase.Steps = steps
	return phrase, nil
}

// NormalizeLetter canonicalizes a letter entry: the letter is upper-cased and
// validated as a single A-Z character, and every step is normalized.
func NormalizeLetter(letter Letter) (Letter, error) {
	canonical, err := CanonicalLetter(letter.Letter)
	if err != nil {
		return Letter{}, err
	}
	letter.Letter = canonical
	letter.Notes = strings.TrimSpace(letter.Notes)
	steps, err := normalizeSteps(letter.Steps)
	if err != nil {
		return Letter{}, err
	}
	letter.Steps = steps
	return letter, nil
}

func normalizeSteps(steps []Step) ([]Step, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	normalized := make([]Step, 0, len(steps))
	for _, step := range steps {
		normalizedStep, err := NormalizeStep(step)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, normalizedStep)
	}
	return normalized, nil
}

// CanonicalKey returns the canonical phrase key form: trimmed and upper-cased.
func CanonicalKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// CanonicalLetter returns the canonical letter form: trimmed and upper-cased.
// It rejects anything that is not exactly one character in A-Z.
func CanonicalLetter(letter string) (string, error) {
	canonical := strings.ToUpper(strings.TrimSpace(letter))
	if len(canonical) != 1 || canonical[0] < 'A' || canonical[0] > 'Z' {
		return "", ErrInvalidLetter
	}
	return canonical, nil
}

// CloneSteps copies a step sequence so callers can share catalog entries
// without aliasing their backing arrays. Step order is preserved.
func CloneSteps(steps []Step) []Step {
	if len(steps) == 0 {
		return nil
	}
	return append([]Step(nil), steps...)
}
