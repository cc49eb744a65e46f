// Package domain implements the translation resolution pipeline: text
// normalization, phrase-versus-spelling selection, availability-aware
// fallback, and action plan construction.
package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/louisbranch/signbridge/internal/gesture"
)

// Translation sources for TranslationResult.Source.
const (
	// SourcePhrase marks a result produced by one whole-phrase match.
	SourcePhrase = "phrase"
	// SourceSpelling marks a result produced by letter-by-letter spelling.
	SourceSpelling = "spelling"
)

var (
	// ErrInvalidInput indicates the request text is empty or whitespace-only.
	ErrInvalidInput = errors.New("translation text is required")
	// ErrNoTranslation indicates no phrase matched and no letter resolved.
	ErrNoTranslation = errors.New("no translation available")
	// ErrUnavailable indicates an upstream catalog could not be reached.
	ErrUnavailable = errors.New("catalog unavailable")
	// ErrNotFound indicates an upstream catalog responded but has no entry.
	ErrNotFound = errors.New("catalog entry not found")
)

// PhraseSource lists candidate whole-phrase entries. Implementations
// normalize transport failures to ErrUnavailable; the resolver treats any
// error as catalog degradation and falls through to the local mirror.
type PhraseSource interface {
	FetchAllPhrases(ctx context.Context) ([]gesture.Phrase, error)
}

// LetterSource resolves single fingerspelling letters. Implementations
// return ErrNotFound when the catalog responds without an entry and
// ErrUnavailable on transport failure; the resolver recovers from both via
// the local mirror.
type LetterSource interface {
	FetchLetter(ctx context.Context, letter string) (gesture.Letter, error)
}

// Fallback mirrors a small subset of catalog entries in process memory so
// translation keeps working with zero reachable upstreams.
type Fallback interface {
	LookupPhrase(normalizedName string) (gesture.Phrase, bool)
	LookupLetter(letter string) (gesture.Letter, bool)
}

// TranslationResult is the ordered outcome of one translation request.
type TranslationResult struct {
	NormalizedText string   `json:"normalized_text"`
	Actions        []Action `json:"actions"`
	Source         string   `json:"source"`
	Warnings       []string `json:"warnings"`
}

// Resolver is the translation decision engine. It owns the only branching
// policy in the pipeline; catalog access and the local mirror are injected.
type Resolver struct {
	phrases  PhraseSource
	letters  LetterSource
	fallback Fallback
}

// NewResolver constructs a resolver over the provided sources. Sources may
// be nil; resolution then degrades to whatever the remaining sources cover.
func NewResolver(phrases PhraseSource, letters LetterSource, fallback Fallback) *Resolver {
	return &Resolver{
		phrases:  phrases,
		letters:  letters,
		fallback: fallback,
	}
}

// Resolve translates raw text into an ordered action plan.
//
// A whole-phrase match wins over spelling and is exact on normalized display
// names, never substring or fuzzy. Anything else is fingerspelled character
// by character: whitespace is skipped silently, unsupported characters are
// skipped with a warning, and letters missing from both the catalog and the
// mirror are reported once, aggregated and sorted. The call fails with
// ErrInvalidInput on blank text and ErrNoTranslation when nothing resolved.
func (r *Resolver) Resolve(ctx context.Context, rawText string) (TranslationResult, error) {
	if r == nil {
		return TranslationResult{}, errors.New("resolver is nil")
	}
	if strings.TrimSpace(rawText) == "" {
		return TranslationResult{}, ErrInvalidInput
	}

	normalized := Normalize(rawText)
	warnings := []string{}

	if phrase, ok := r.findPhrase(ctx, normalized); ok {
		return TranslationResult{
			NormalizedText: normalized,
			Actions:        []Action{PhraseAction(phrase)},
			Source:         SourcePhrase,
			Warnings:       warnings,
		}, nil
	}

	var actions []Action
	unresolved := make(map[rune]bool)
	for _, ch := range normalized {
		if unicode.IsSpace(ch) {
			continue
		}
		if ch < 'a' || ch > 'z' {
			warnings = append(warnings, fmt.Sprintf("character %q not supported; skipped", ch))
			continue
		}
		letter, ok := r.findLetter(ctx, string(ch))
		if !ok {
			unresolved[ch] = true
			continue
		}
		actions = append(actions, LetterAction(letter))
	}

	if len(unresolved) > 0 {
		warnings = append(warnings, missingLettersWarning(unresolved))
	}
	if len(actions) == 0 {
		return TranslationResult{}, ErrNoTranslation
	}

	return TranslationResult{
		NormalizedText: normalized,
		Actions:        actions,
		Source:         SourceSpelling,
		Warnings:       warnings,
	}, nil
}

func (r *Resolver) findPhrase(ctx context.Context, normalized string) (gesture.Phrase, bool) {
	if r.phrases != nil {
		phrases, err := r.phrases.FetchAllPhrases(ctx)
		if err == nil {
			for _, candidate := range phrases {
				if Normalize(candidate.DisplayName) == normalized {
					return candidate, true
				}
			}
		}
	}
	if r.fallback != nil {
		if phrase, ok := r.fallback.LookupPhrase(normalized); ok {
			return phrase, true
		}
	}
	return gesture.Phrase{}, false
}

func (r *Resolver) findLetter(ctx context.Context, letter string) (gesture.Letter, bool) {
	if r.letters != nil {
		entry, err := r.letters.FetchLetter(ctx, letter)
		if err == nil {
			return entry, true
		}
	}
	if r.fallback != nil {
		if entry, ok := r.fallback.LookupLetter(letter); ok {
			return entry, true
		}
	}
	return gesture.Letter{}, false
}

func missingLettersWarning(unresolved map[rune]bool) string {
	letters := make([]string, 0, len(unresolved))
	for ch := range unresolved {
		letters = append(letters, string(ch))
	}
	sort.Strings(letters)
	return fmt.Sprintf("no sign data for: %s", strings.Join(letters, ", "))
}
