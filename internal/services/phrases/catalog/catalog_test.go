package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/signbridge/internal/gesture"
	"github.com/louisbranch/signbridge/internal/services/phrases/storage"
)

type fakePhraseStore struct {
	records map[string]storage.PhraseRecord
	putErr  error
	listErr error
}

func newFakePhraseStore() *fakePhraseStore {
	return &fakePhraseStore{records: make(map[string]storage.PhraseRecord)}
}

func (f *fakePhraseStore) PutPhrase(_ context.Context, record storage.PhraseRecord) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.records[record.Key] = record
	return nil
}

func (f *fakePhraseStore) GetPhraseByKey(_ context.Context, key string) (storage.PhraseRecord, error) {
	record, ok := f.records[gesture.CanonicalKey(key)]
	if !ok {
		return storage.PhraseRecord{}, storage.ErrNotFound
	}
	return record, nil
}

func (f *fakePhraseStore) ListPhrases(_ context.Context) ([]storage.PhraseRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]storage.PhraseRecord, 0, len(f.records))
	for _, record := range f.records {
		out = append(out, record)
	}
	return out, nil
}

func (f *fakePhraseStore) CountPhrases(_ context.Context) (int, error) {
	return len(f.records), nil
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func TestEnsureSeededPopulatesEmptyStore(t *testing.T) {
	t.Parallel()

	store := newFakePhraseStore()
	library := NewLibrary(store, fixedClock)

	seeded, err := library.EnsureSeeded(context.Background())
	if err != nil {
		t.Fatalf("ensure seeded: %v", err)
	}
	if seeded != len(Builtin()) {
		t.Fatalf("seeded = %d, want %d", seeded, len(Builtin()))
	}

	phrase, err := library.Get(context.Background(), "PHRASE_HELLO")
	if err != nil {
		t.Fatalf("get seeded phrase: %v", err)
	}
	if phrase.DisplayName != "hello" {
		t.Fatalf("display name = %q, want hello", phrase.DisplayName)
	}
	if len(phrase.Steps) != 1 || phrase.Steps[0].HoldMillis != 700 {
		t.Fatalf("hello steps = %+v, want single 700ms step", phrase.Steps)
	}
}

func TestEnsureSeededLeavesPopulatedStoreAlone(t *testing.T) {
	t.Parallel()

	store := newFakePhraseStore()
	library := NewLibrary(store, fixedClock)

	custom := gesture.Phrase{
		Key:         "PHRASE_GOOD_MORNING",
		DisplayName: "good morning",
		Steps: []gesture.Step{
			{Handshape: "flat-hand", Orientation: "palm-in", Location: "chin", Motion: "arc-up", HoldMillis: 650},
		},
	}
	if err := library.Put(context.Background(), custom); err != nil {
		t.Fatalf("put custom phrase: %v", err)
	}

	seeded, err := library.EnsureSeeded(context.Background())
	if err != nil {
		t.Fatalf("ensure seeded: %v", err)
	}
	if seeded != 0 {
		t.Fatalf("seeded = %d, want 0 for populated store", seeded)
	}
	if len(store.records) != 1 {
		t.Fatalf("store has %d records, want 1", len(store.records))
	}
}

func TestListSortsByKeyAndFilters(t *testing.T) {
	t.Parallel()

	store := newFakePhraseStore()
	library := NewLibrary(store, fixedClock)
	if _, err := library.EnsureSeeded(context.Background()); err != nil {
		t.Fatalf("ensure seeded: %v", err)
	}

	all, err := library.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list phrases: %v", err)
	}
	if len(all) != len(Builtin()) {
		t.Fatalf("listed %d phrases, want %d", len(all), len(Builtin()))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Fatalf("list not key-sorted: %q before %q", all[i-1].Key, all[i].Key)
		}
	}

	filtered, err := library.List(context.Background(), "thank")
	if err != nil {
		t.Fatalf("filter phrases: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Key != "PHRASE_THANK_YOU" {
		t.Fatalf("filtered = %+v, want single PHRASE_THANK_YOU", filtered)
	}

	byNotes, err := library.List(context.Background(), "clockwise")
	if err != nil {
		t.Fatalf("filter by notes: %v", err)
	}
	if len(byNotes) != 2 {
		t.Fatalf("notes filter matched %d, want 2 (please, sorry)", len(byNotes))
	}
}

func TestGetUnknownKeyReturnsNotFound(t *testing.T) {
	t.Parallel()

	library := NewLibrary(newFakePhraseStore(), fixedClock)

	if _, err := library.Get(context.Background(), "PHRASE_MISSING"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPutRejectsInvalidPhrase(t *testing.T) {
	t.Parallel()

	library := NewLibrary(newFakePhraseStore(), fixedClock)

	err := library.Put(context.Background(), gesture.Phrase{Key: "PHRASE_EMPTY", DisplayName: "empty"})
	if !errors.Is(err, gesture.ErrNoSteps) {
		t.Fatalf("err = %v, want ErrNoSteps", err)
	}
}

func TestLibraryRequiresStore(t *testing.T) {
	t.Parallel()

	library := NewLibrary(nil, nil)

	if _, err := library.List(context.Background(), ""); !errors.Is(err, ErrStoreNotConfigured) {
		t.Fatalf("list err = %v, want ErrStoreNotConfigured", err)
	}
	if _, err := library.EnsureSeeded(context.Background()); !errors.Is(err, ErrStoreNotConfigured) {
		t.Fatalf("seed err = %v, want ErrStoreNotConfigured", err)
	}
}

func TestBuiltinCopiesSteps(t *testing.T) {
	t.Parallel()

	first := Builtin()
	first[0].Steps[0].Handshape = "mutated"

	second := Builtin()
	if second[0].Steps[0].Handshape == "mutated" {
		t.Fatal("Builtin leaked shared step storage")
	}
}
