// Package phrasepack imports TOML phrase packs into the phrases service
// store. A pack is a file of [[phrase]] tables, each carrying the key,
// display name, notes, and ordered [[phrase.step]] poses of one entry.
package phrasepack

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/louisbranch/signbridge/internal/gesture"
	"github.com/louisbranch/signbridge/internal/services/phrases/catalog"
	storagesqlite "github.com/louisbranch/signbridge/internal/services/phrases/storage/sqlite"
)

// Config holds configuration for the phrase pack importer.
type Config struct {
	DBPath string
	DryRun bool
	Packs  []string
}

// ParseConfig parses CLI flags into a Config. Positional arguments are the
// pack files to import.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{
		DBPath: filepath.Join("data", "phrases.db"),
	}

	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "phrase database path")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate packs without writing to the database")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Packs = fs.Args()
	if len(cfg.Packs) == 0 {
		return Config{}, errors.New("at least one pack file is required")
	}
	return cfg, nil
}

// Run imports every configured pack and writes a per-pack summary to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	packs := make([][]gesture.Phrase, 0, len(cfg.Packs))
	for _, path := range cfg.Packs {
		phrases, err := LoadPack(path)
		if err != nil {
			return fmt.Errorf("pack %s: %w", path, err)
		}
		packs = append(packs, phrases)
	}

	if cfg.DryRun {
		for i, path := range cfg.Packs {
			fmt.Fprintf(out, "%s: %d phrases ok (dry run)\n", path, len(packs[i]))
		}
		return nil
	}

	store, err := storagesqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open phrase store: %w", err)
	}
	defer store.Close()

	library := catalog.NewLibrary(store, nil)
	total := 0
	for i, path := range cfg.Packs {
		for _, phrase := range packs[i] {
			if err := library.Put(ctx, phrase); err != nil {
				return fmt.Errorf("pack %s: phrase %q: %w", path, phrase.Key, err)
			}
		}
		total += len(packs[i])
		fmt.Fprintf(out, "%s: imported %d phrases\n", path, len(packs[i]))
	}
	fmt.Fprintf(out, "imported %d phrases into %s\n", total, cfg.DBPath)
	return nil
}

// LoadPack parses and validates one TOML phrase pack file.
func LoadPack(path string) ([]gesture.Phrase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack: %w", err)
	}
	return ParsePack(data)
}

// ParsePack parses and validates TOML phrase pack contents.
func ParsePack(data []byte) ([]gesture.Phrase, error) {
	var file struct {
		Phrases []struct {
			Key         string         `toml:"key"`
			DisplayName string         `toml:"display_name"`
			Notes       string         `toml:"notes"`
			Steps       []gesture.Step `toml:"step"`
		} `toml:"phrase"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse pack: %w", err)
	}
	if len(file.Phrases) == 0 {
		return nil, errors.New("pack defines no phrases")
	}

	seen := make(map[string]bool, len(file.Phrases))
	phrases := make([]gesture.Phrase, 0, len(file.Phrases))
	for _, raw := range file.Phrases {
		phrase, err := gesture.NormalizePhrase(gesture.Phrase{
			Key:         raw.Key,
			DisplayName: raw.DisplayName,
			Steps:       raw.Steps,
			Notes:       raw.Notes,
		})
		if err != nil {
			return nil, fmt.Errorf("phrase %q: %w", strings.TrimSpace(raw.Key), err)
		}
		if seen[phrase.Key] {
			return nil, fmt.Errorf("phrase %q defined more than once", phrase.Key)
		}
		seen[phrase.Key] = true
		phrases = append(phrases, phrase)
	}
	return phrases, nil
}
