package request

import (
	_ "embed"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OtherReason is accepted for every category together with a custom reason.
const OtherReason = "Other"

//go:embed catalog.yaml
var catalogYAML []byte

// Type is one application category with its permitted reasons.
type Type struct {
	Code    string   `yaml:"code" json:"code"`
	Name    string   `yaml:"name" json:"name"`
	Reasons []string `yaml:"reasons" json:"reasons"`
}

// Catalog is the immutable set of application categories.
type Catalog struct {
	types  []Type
	byCode map[string]Type
}

// ParseCatalog builds a catalog from its YAML document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Types []Type `yaml:"types"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parse request catalog")
	}
	c := &Catalog{byCode: make(map[string]Type, len(doc.Types))}
	for _, t := range doc.Types {
		if t.Code == "" || t.Name == "" {
			return nil, errors.Errorf("request catalog: type %q is missing a code or name", t.Code)
		}
		if _, dup := c.byCode[t.Code]; dup {
			return nil, errors.Errorf("request catalog: duplicate type %q", t.Code)
		}
		c.byCode[t.Code] = t
		c.types = append(c.types, t)
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// DefaultCatalog returns the embedded catalog, parsed once.
func DefaultCatalog() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = ParseCatalog(catalogYAML)
	})
	return defaultCatalog, defaultErr
}

// Types returns every category in display order.
func (c *Catalog) Types() []Type {
	out := make([]Type, len(c.types))
	copy(out, c.types)
	return out
}

// Lookup returns the category with code.
func (c *Catalog) Lookup(code string) (Type, bool) {
	t, ok := c.byCode[code]
	return t, ok
}

// Reasons returns the permitted reasons of code. Unknown categories only offer "Other".
func (c *Catalog) Reasons(code string) []string {
	t, ok := c.byCode[code]
	if !ok {
		return []string{OtherReason}
	}
	out := make([]string, len(t.Reasons))
	copy(out, t.Reasons)
	return out
}

// AllowsReason reports whether reason is one of the permitted reasons of code.
func (c *Catalog) AllowsReason(code, reason string) bool {
	for _, r := range c.byCode[code].Reasons {
		if r == reason {
			return true
		}
	}
	return false
}
