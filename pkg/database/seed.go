package database

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/Payphone-Digital/catalog-api/internal/model"
	"github.com/Payphone-Digital/catalog-api/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// productSeedTemplate renders the initial catalog rows. Going through a
// template keeps the seed data declarative and lets sprig functions fill
// in derived values.
const productSeedTemplate = `[
{{- $skus := list "CAT-0001" "CAT-0002" "CAT-0003" }}
{{- range $i, $sku := $skus }}
  {{- if $i }},{{ end }}
  {
    "sku": {{ $sku | quote }},
    "name": {{ printf "Sample product %d" (add $i 1) | quote }},
    "description": {{ printf "Seeded catalog entry %s" ($sku | lower) | quote }},
    "price": {{ mulf 9.99 (addf $i 1.0) }},
    "stock": {{ mul 25 (add $i 1) }},
    "attributes": {"origin": "seed", "batch": {{ $i | quote }}}
  }
{{- end }}
]`

type productSeed struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Stock       int             `json:"stock"`
	Attributes  json.RawMessage `json:"attributes"`
}

// Seed inserts initial data. Existing rows are left untouched so the
// seed is safe to run on every startup.
func Seed(db *gorm.DB) error {
	tmpl, err := template.New("product-seed").Funcs(sprig.TxtFuncMap()).Parse(productSeedTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse seed template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return fmt.Errorf("failed to render seed template: %w", err)
	}

	var seeds []productSeed
	if err := json.Unmarshal(buf.Bytes(), &seeds); err != nil {
		return fmt.Errorf("failed to decode seed data: %w", err)
	}

	seeded := 0
	for _, seed := range seeds {
		product := model.Product{
			SKU:         seed.SKU,
			Name:        seed.Name,
			Description: seed.Description,
			Price:       seed.Price,
			Stock:       seed.Stock,
			Attributes:  datatypes.JSON(seed.Attributes),
		}

		result := db.Where("sku = ?", seed.SKU).FirstOrCreate(&product)
		if result.Error != nil {
			return fmt.Errorf("failed to seed product %s: %w", seed.SKU, result.Error)
		}
		if result.RowsAffected > 0 {
			seeded++
		}
	}

	logger.GetLogger().Info(fmt.Sprintf("Seed completed, %d new products inserted", seeded))
	return nil
}
