package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Product is one product line within a brand's catalog.
type Product struct {
	Name           string   `yaml:"name"`
	CurrentFlavors []string `yaml:"current_flavors"`
	MissingFlavors []string `yaml:"missing_flavors"`
	NeedsPromotion []string `yaml:"needs_promotion"`
}

// BrandEntry describes one brand and its product lines.
type BrandEntry struct {
	Name           string    `yaml:"name"`
	Positioning    string    `yaml:"positioning"`
	TargetAudience string    `yaml:"target_audience"`
	FlavorStyle    string    `yaml:"flavor_style"`
	Products       []Product `yaml:"products"`
}

// Competitor is a rival brand with flavors worth tracking.
type Competitor struct {
	Name    string   `yaml:"name"`
	Flavors []string `yaml:"flavors"`
}

// Catalog is the product knowledge embedded into the analysis prompt.
type Catalog struct {
	Brands          []BrandEntry `yaml:"brands"`
	Competitors     []Competitor `yaml:"competitors"`
	BestSellers     []string     `yaml:"best_sellers"`
	Underperformers []string     `yaml:"underperformers"`
}

// Load reads the catalog from path, or the embedded default when path is
// empty.
func Load(path string) (Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Catalog{}, fmt.Errorf("catalog: read %s: %w", path, err)
		}
		data = b
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("catalog: parse: %w", err)
	}
	if len(c.Brands) == 0 {
		return Catalog{}, fmt.Errorf("catalog: no brands defined")
	}
	return c, nil
}
