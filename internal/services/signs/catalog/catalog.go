// Package catalog holds the embedded fingerspelling catalog served by the
// signs service. The catalog is loaded once at process start and never
// mutated afterwards.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/louisbranch/signbridge/internal/gesture"
)

const catalogPath = "data/letters.toml"

// alphabetSize is the number of letters a complete catalog must define.
const alphabetSize = 26

//go:embed data/letters.toml
var embeddedFS embed.FS

var defaultCatalog = mustLoadEmbedded()

// Catalog is an immutable set of letter entries keyed by canonical letter.
type Catalog struct {
	letters  []gesture.Letter
	byLetter map[string]gesture.Letter
}

// Default returns the process-wide embedded letter catalog.
func Default() *Catalog {
	return defaultCatalog
}

// LoadEmbedded loads the catalog file embedded in this package.
func LoadEmbedded() (*Catalog, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads and validates a letter catalog from the provided filesystem.
// The catalog must define every letter A-Z exactly once.
func LoadFromFS(catalogFS fs.FS) (*Catalog, error) {
	data, err := fs.ReadFile(catalogFS, catalogPath)
	if err != nil {
		return nil, fmt.Errorf("read letter catalog: %w", err)
	}

	var file struct {
		Letters []struct {
			Letter string         `toml:"letter"`
			Notes  string         `toml:"notes"`
			Steps  []gesture.Step `toml:"step"`
		} `toml:"letter"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse letter catalog: %w", err)
	}

	byLetter := make(map[string]gesture.Letter, len(file.Letters))
	letters := make([]gesture.Letter, 0, len(file.Letters))
	for _, raw := range file.Letters {
		entry, err := gesture.NormalizeLetter(gesture.Letter{
			Letter: raw.Letter,
			Steps:  raw.Steps,
			Notes:  raw.Notes,
		})
		if err != nil {
			return nil, fmt.Errorf("letter %q: %w", raw.Letter, err)
		}
		if _, exists := byLetter[entry.Letter]; exists {
			return nil, fmt.Errorf("letter %q defined more than once", entry.Letter)
		}
		byLetter[entry.Letter] = entry
		letters = append(letters, entry)
	}

	if len(letters) != alphabetSize {
		return nil, fmt.Errorf("letter catalog defines %d letters, want %d", len(letters), alphabetSize)
	}

	sort.Slice(letters, func(i, j int) bool { return letters[i].Letter < letters[j].Letter })

	return &Catalog{letters: letters, byLetter: byLetter}, nil
}

// Letters returns every entry sorted by letter.
func (c *Catalog) Letters() []gesture.Letter {
	if c == nil {
		return nil
	}
	return copyLetters(c.letters)
}

// Lookup finds one entry by letter, tolerating lower-case input.
func (c *Catalog) Lookup(letter string) (gesture.Letter, bool) {
	if c == nil {
		return gesture.Letter{}, false
	}
	canonical, err := gesture.CanonicalLetter(letter)
	if err != nil {
		return gesture.Letter{}, false
	}
	entry, ok := c.byLetter[canonical]
	return entry, ok
}

// Search returns entries whose letter or notes contain the query,
// case-insensitively, sorted by letter. An empty query returns everything.
func (c *Catalog) Search(query string) []gesture.Letter {
	if c == nil {
		return nil
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return copyLetters(c.letters)
	}
	var out []gesture.Letter
	for _, entry := range c.letters {
		if strings.Contains(strings.ToLower(entry.Letter), query) ||
			strings.Contains(strings.ToLower(entry.Notes), query) {
			out = append(out, entry)
		}
	}
	return out
}

// Len reports how many letters the catalog defines.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.letters)
}

func copyLetters(letters []gesture.Letter) []gesture.Letter {
	out := make([]gesture.Letter, len(letters))
	for i, entry := range letters {
		entry.Steps = gesture.CloneSteps(entry.Steps)
		out[i] = entry
	}
	return out
}

func mustLoadEmbedded() *Catalog {
	loaded, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return loaded
}
