// Package catalog exposes the phrase library served by the phrases service.
// It layers catalog semantics (builtin seeding, key lookup, search) over the
// persistence boundary.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/louisbranch/signbridge/internal/gesture"
	"github.com/louisbranch/signbridge/internal/services/phrases/storage"
)

var (
	// ErrNotFound indicates the library has no phrase under the requested key.
	ErrNotFound = errors.New("phrase not found")
	// ErrStoreNotConfigured indicates the library is missing persistence wiring.
	ErrStoreNotConfigured = errors.New("phrase store is not configured")
)

// Library serves phrase catalog reads backed by a PhraseStore.
type Library struct {
	store storage.PhraseStore
	clock func() time.Time
}

// NewLibrary constructs a phrase library over the provided store.
func NewLibrary(store storage.PhraseStore, clock func() time.Time) *Library {
	if clock == nil {
		clock = time.Now
	}
	return &Library{store: store, clock: clock}
}

// EnsureSeeded inserts the builtin phrase set when the store is empty. It
// returns how many phrases were written; a non-empty store is left untouched
// so imported packs survive restarts.
func (l *Library) EnsureSeeded(ctx context.Context) (int, error) {
	if l == nil || l.store == nil {
		return 0, ErrStoreNotConfigured
	}

	count, err := l.store.CountPhrases(ctx)
	if err != nil {
		return 0, fmt.Errorf("count phrases: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	now := l.clock().UTC()
	seeded := 0
	for _, phrase := range Builtin() {
		record, err := recordFromPhrase(phrase, now)
		if err != nil {
			return seeded, fmt.Errorf("seed phrase %s: %w", phrase.Key, err)
		}
		if err := l.store.PutPhrase(ctx, record); err != nil {
			return seeded, fmt.Errorf("seed phrase %s: %w", phrase.Key, err)
		}
		seeded++
	}
	return seeded, nil
}

// List returns phrases sorted by key. A non-empty query filters entries whose
// key, display name, or notes contain it, case-insensitively.
func (l *Library) List(ctx context.Context, query string) ([]gesture.Phrase, error) {
	if l == nil || l.store == nil {
		return nil, ErrStoreNotConfigured
	}

	records, err := l.store.ListPhrases(ctx)
	if err != nil {
		return nil, fmt.Errorf("list phrases: %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	phrases := make([]gesture.Phrase, 0, len(records))
	for _, record := range records {
		phrase, err := phraseFromRecord(record)
		if err != nil {
			return nil, err
		}
		if query != "" && !phraseMatches(phrase, query) {
			continue
		}
		phrases = append(phrases, phrase)
	}
	sort.Slice(phrases, func(i, j int) bool { return phrases[i].Key < phrases[j].Key })
	return phrases, nil
}

// Get returns one phrase by key, tolerating lower-case input.
func (l *Library) Get(ctx context.Context, key string) (gesture.Phrase, error) {
	if l == nil || l.store == nil {
		return gesture.Phrase{}, ErrStoreNotConfigured
	}

	record, err := l.store.GetPhraseByKey(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return gesture.Phrase{}, ErrNotFound
		}
		return gesture.Phrase{}, fmt.Errorf("get phrase: %w", err)
	}
	return phraseFromRecord(record)
}

// Put validates and upserts one phrase entry.
func (l *Library) Put(ctx context.Context, phrase gesture.Phrase) error {
	if l == nil || l.store == nil {
		return ErrStoreNotConfigured
	}

	record, err := recordFromPhrase(phrase, l.clock().UTC())
	if err != nil {
		return err
	}
	if err := l.store.PutPhrase(ctx, record); err != nil {
		return fmt.Errorf("put phrase: %w", err)
	}
	return nil
}

func phraseMatches(phrase gesture.Phrase, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(phrase.Key), loweredQuery) ||
		strings.Contains(strings.ToLower(phrase.DisplayName), loweredQuery) ||
		strings.Contains(strings.ToLower(phrase.Notes), loweredQuery)
}

func recordFromPhrase(phrase gesture.Phrase, now time.Time) (storage.PhraseRecord, error) {
	normalized, err := gesture.NormalizePhrase(phrase)
	if err != nil {
		return storage.PhraseRecord{}, err
	}
	stepsJSON, err := json.Marshal(normalized.Steps)
	if err != nil {
		return storage.PhraseRecord{}, fmt.Errorf("encode phrase steps: %w", err)
	}
	return storage.PhraseRecord{
		Key:         normalized.Key,
		DisplayName: normalized.DisplayName,
		StepsJSON:   string(stepsJSON),
		Notes:       normalized.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func phraseFromRecord(record storage.PhraseRecord) (gesture.Phrase, error) {
	var steps []gesture.Step
	if err := json.Unmarshal([]byte(record.StepsJSON), &steps); err != nil {
		return gesture.Phrase{}, fmt.Errorf("decode phrase %s steps: %w", record.Key, err)
	}
	return gesture.Phrase{
		Key:         record.Key,
		DisplayName: record.DisplayName,
		Steps:       steps,
		Notes:       record.Notes,
	}, nil
}
