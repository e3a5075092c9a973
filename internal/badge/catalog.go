package badge

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/treedoctor/treedoctor-api/internal/domain"
	"github.com/treedoctor/treedoctor-api/internal/validation"
)

//go:embed catalog.json
var defaultCatalogJSON []byte

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

var (
	schemaOnce      sync.Once
	schemaValidator validation.SchemaValidator
	schemaErr       error
)

func catalogSchema() (validation.SchemaValidator, error) {
	schemaOnce.Do(func() {
		schemaValidator = validation.NewSchemaValidator()
		schemaErr = schemaValidator.RegisterSchema(CatalogSchemaName, catalogSchemaJSON)
	})
	return schemaValidator, schemaErr
}

// CatalogConfig is the JSON form of the badge catalog
type CatalogConfig struct {
	Version     string                   `json:"version"`
	Description string                   `json:"description"`
	Categories  []domain.CategoryInfo    `json:"categories"`
	Badges      []domain.BadgeDefinition `json:"badges"`
}

// Predicate decides a secret badge from the aggregated metrics and the raw trees
type Predicate func(metrics domain.BadgeMetrics, trees []domain.Tree) bool

// Catalog is the immutable, versioned set of badge definitions.
// One value is shared by the evaluator and every presentation endpoint.
type Catalog struct {
	version     string
	definitions []domain.BadgeDefinition
	index       map[string]int
	categories  []domain.CategoryInfo
	predicates  map[string]Predicate
}

// NewCatalog validates the config against the predicate registry and builds a Catalog
func NewCatalog(cfg CatalogConfig, predicates map[string]Predicate) (*Catalog, error) {
	if cfg.Version == "" {
		return nil, fmt.Errorf("%w: missing version", domain.ErrInvalidCatalog)
	}
	if len(cfg.Badges) == 0 {
		return nil, fmt.Errorf("%w: no badges defined", domain.ErrInvalidCatalog)
	}

	known := make(map[domain.BadgeCategory]bool, len(domain.BadgeCategories))
	for _, c := range domain.BadgeCategories {
		known[c] = true
	}

	c := &Catalog{
		version:     cfg.Version,
		definitions: make([]domain.BadgeDefinition, len(cfg.Badges)),
		index:       make(map[string]int, len(cfg.Badges)),
		categories:  make([]domain.CategoryInfo, 0, len(cfg.Categories)),
		predicates:  make(map[string]Predicate),
	}

	for i, def := range cfg.Badges {
		if def.ID == "" {
			return nil, fmt.Errorf("%w: badge at index %d has empty id", domain.ErrInvalidCatalog, i)
		}
		if _, dup := c.index[def.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate badge id '%s'", domain.ErrInvalidCatalog, def.ID)
		}
		if !known[def.Category] {
			return nil, fmt.Errorf("%w: badge '%s' has unknown category '%s'", domain.ErrInvalidCatalog, def.ID, def.Category)
		}
		if (def.Category == domain.BadgeCategorySecret) != def.IsSecret {
			return nil, fmt.Errorf("%w: badge '%s' secret flag does not match category", domain.ErrInvalidCatalog, def.ID)
		}

		if def.IsSecret {
			pred, ok := predicates[def.ID]
			if !ok || pred == nil {
				return nil, fmt.Errorf("%w: secret badge '%s' has no predicate", domain.ErrInvalidCatalog, def.ID)
			}
			def.Threshold = 0
			c.predicates[def.ID] = pred
		} else if def.Threshold <= 0 {
			return nil, fmt.Errorf("%w: badge '%s' needs a positive threshold", domain.ErrInvalidCatalog, def.ID)
		}

		c.definitions[i] = def
		c.index[def.ID] = i
	}

	seen := make(map[domain.BadgeCategory]bool)
	for _, info := range cfg.Categories {
		if !known[info.Category] {
			return nil, fmt.Errorf("%w: unknown category '%s'", domain.ErrInvalidCatalog, info.Category)
		}
		seen[info.Category] = true
		c.categories = append(c.categories, info)
	}
	// Categories without display info still appear in summaries
	for _, cat := range domain.BadgeCategories {
		if !seen[cat] {
			c.categories = append(c.categories, domain.CategoryInfo{Category: cat, Title: string(cat)})
		}
	}

	return c, nil
}

// ParseCatalog builds a catalog from JSON using the built-in predicates.
// The document is checked against the catalog JSON schema first, so that
// misspelt fields are rejected instead of silently ignored.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cfg CatalogConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalogFailed, err)
	}

	schema, err := catalogSchema()
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSchemaUnavailable, err)
	}
	if err := schema.ValidateBytes(data, CatalogSchemaName); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	return NewCatalog(cfg, SecretPredicates())
}

// LoadCatalog reads a catalog JSON file. An empty path loads the embedded catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(defaultCatalogJSON)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalogFailed, err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the embedded catalog. It panics if the embedded file is invalid,
// which the package tests rule out.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogJSON)
	if err != nil {
		panic(err)
	}
	return c
}

// Version identifies the catalog revision
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of badge definitions
func (c *Catalog) Len() int {
	return len(c.definitions)
}

// Definitions returns a copy of every definition in catalog order
func (c *Catalog) Definitions() []domain.BadgeDefinition {
	out := make([]domain.BadgeDefinition, len(c.definitions))
	copy(out, c.definitions)
	return out
}

// Definition looks up a definition by id
func (c *Catalog) Definition(id string) (domain.BadgeDefinition, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.BadgeDefinition{}, false
	}
	return c.definitions[i], true
}

// ByCategory returns the definitions of one category in catalog order
func (c *Catalog) ByCategory(category domain.BadgeCategory) []domain.BadgeDefinition {
	var out []domain.BadgeDefinition
	for _, def := range c.definitions {
		if def.Category == category {
			out = append(out, def)
		}
	}
	return out
}

// Categories returns category display info in display order
func (c *Catalog) Categories() []domain.CategoryInfo {
	out := make([]domain.CategoryInfo, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Catalog) predicate(id string) Predicate {
	return c.predicates[id]
}

// Public returns the definitions with the description of secret badges masked.
// Names and icons stay visible.
func (c *Catalog) Public() []domain.BadgeDefinition {
	out := c.Definitions()
	for i := range out {
		if out[i].IsSecret {
			out[i].Description = SecretPlaceholder
		}
	}
	return out
}
