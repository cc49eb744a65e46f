// Package storage defines the persistence boundary for the phrase catalog.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested phrase record is missing.
	ErrNotFound = errors.New("phrase not found")
	// ErrConflict indicates a requested write conflicts with uniqueness constraints.
	ErrConflict = errors.New("phrase conflict")
)

// PhraseRecord stores one whole-phrase catalog entry. Steps are kept as a
// JSON-encoded array so the storage schema stays stable as step fields evolve.
type PhraseRecord struct {
	Key         string
	DisplayName string
	StepsJSON   string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PhraseStore persists phrase catalog state.
type PhraseStore interface {
	PutPhrase(ctx context.Context, record PhraseRecord) error
	GetPhraseByKey(ctx context.Context, key string) (PhraseRecord, error)
	ListPhrases(ctx context.Context) ([]PhraseRecord, error)
	CountPhrases(ctx context.Context) (int, error)
}
