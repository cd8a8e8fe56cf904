package orgstructure

import (
	_ "embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed org.yaml
var orgYAML []byte

// Catalog is the reference university structure loaded at startup.
type Catalog struct {
	GoverningBodies []CatalogBody    `yaml:"governing_bodies"`
	Schools         []CatalogSchool  `yaml:"schools"`
	Sections        []CatalogSection `yaml:"academic_sections"`
	Cells           []CatalogSection `yaml:"support_cells"`
}

// CatalogBody describes a governing body.
type CatalogBody struct {
	Type        string `yaml:"type"`
	Name        string `yaml:"name"`
	Designation string `yaml:"designation"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Color       string `yaml:"color"`
}

// CatalogSchool describes a school. Every department offers every listed program.
type CatalogSchool struct {
	Name        string   `yaml:"name"`
	ShortName   string   `yaml:"short_name"`
	Icon        string   `yaml:"icon"`
	Color       string   `yaml:"color"`
	Departments []string `yaml:"departments"`
	Programs    []string `yaml:"programs"`
}

// CatalogSection describes an academic section or support cell.
type CatalogSection struct {
	Type        string `yaml:"type"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ParseCatalog decodes a catalog document.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, errors.Wrap(err, "parse org catalog")
	}
	return c, nil
}

// DefaultCatalog returns the embedded university structure.
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(orgYAML)
}
