// Package catalog loads the immutable language dataset and answers search,
// suggestion and taxonomy-filter queries over it.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"lingomap/pkg/model"
)

//go:embed data/languages.json
var languagesJSON []byte

// StandardDialect names the variant synthesized for records without dialects.
const StandardDialect = "standard"

// ErrInvalidDataset wraps every validation failure during load.
var ErrInvalidDataset = errors.New("invalid language dataset")

var idPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Catalog is the loaded language dataset. It is read-only after construction
// and safe for concurrent use.
type Catalog struct {
	records []model.LanguageRecord
	byID    map[string]int
	index   []searchEntry
}

// LoadEmbedded loads the bundled dataset.
func LoadEmbedded() (*Catalog, error) {
	return Parse(languagesJSON)
}

// Load reads a dataset from path. An empty path loads the bundled dataset.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return LoadEmbedded()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read language dataset: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a JSON array of language records.
func Parse(data []byte) (*Catalog, error) {
	var records []model.LanguageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse language dataset: %w", err)
	}
	return New(records)
}

// New validates records and builds the lookup indexes.
func New(records []model.LanguageRecord) (*Catalog, error) {
	c := &Catalog{
		records: records,
		byID:    make(map[string]int, len(records)),
	}

	for i := range records {
		r := &records[i]
		if err := validate(r); err != nil {
			return nil, err
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDataset, r.ID)
		}
		c.byID[r.ID] = i
		for j := range r.Countries {
			r.Countries[j] = strings.ToUpper(strings.TrimSpace(r.Countries[j]))
		}
	}

	c.index = buildIndex(records)

	slog.Debug("Catalog: Loaded language records", "count", len(records))
	return c, nil
}

func validate(r *model.LanguageRecord) error {
	if !idPattern.MatchString(r.ID) {
		return fmt.Errorf("%w: id %q must be a lowercase code", ErrInvalidDataset, r.ID)
	}
	if strings.TrimSpace(r.Taxonomy.Family) == "" {
		return fmt.Errorf("%w: %s has no family", ErrInvalidDataset, r.ID)
	}
	if r.TotalSpeakers != nil && *r.TotalSpeakers < 0 {
		return fmt.Errorf("%w: %s has negative speaker count", ErrInvalidDataset, r.ID)
	}
	seen := make(map[string]bool, len(r.Dialects))
	for _, d := range r.Dialects {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("%w: %s has a dialect without a name", ErrInvalidDataset, r.ID)
		}
		if seen[d.Name] {
			return fmt.Errorf("%w: %s lists dialect %q twice", ErrInvalidDataset, r.ID, d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// All returns the records in dataset order. Callers must not modify them.
func (c *Catalog) All() []model.LanguageRecord {
	return c.records
}

// ByID returns the record with the given id.
func (c *Catalog) ByID(id string) (*model.LanguageRecord, bool) {
	i, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, false
	}
	return &c.records[i], true
}

// InCountry returns the records spoken in country code cc, in dataset order.
func (c *Catalog) InCountry(cc string) []*model.LanguageRecord {
	var out []*model.LanguageRecord
	for i := range c.records {
		if c.records[i].SpokenIn(cc) {
			out = append(out, &c.records[i])
		}
	}
	return out
}

// Dialects returns the record's variants. A record without variants yields
// one synthetic standard variant carrying the default sample text.
func (c *Catalog) Dialects(id string) ([]model.DialectVariant, error) {
	r, ok := c.ByID(id)
	if !ok {
		return nil, fmt.Errorf("unknown language %q", id)
	}
	return EffectiveDialects(r), nil
}

// EffectiveDialects applies the standard-variant fallback to r.
func EffectiveDialects(r *model.LanguageRecord) []model.DialectVariant {
	if len(r.Dialects) > 0 {
		return r.Dialects
	}
	return []model.DialectVariant{{
		Name:       StandardDialect,
		SampleText: r.DefaultAudioText,
	}}
}

// SampleText picks the text to speak for a language/dialect: the variant's
// own sample, else the record default.
func SampleText(r *model.LanguageRecord, dialect string) string {
	if d, ok := r.Dialect(dialect); ok && strings.TrimSpace(d.SampleText) != "" {
		return d.SampleText
	}
	return r.DefaultAudioText
}
