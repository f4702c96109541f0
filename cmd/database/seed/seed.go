package seed

import (
	"context"
	"fmt"

	"cullinary-backend/pkg/catalog"

	"gorm.io/gorm"
)

// SeedCatalog replaces the dish table with the contents of the recipe CSV.
// It is run out-of-band; the catalog is read-only while the app serves.
func SeedCatalog(db *gorm.DB, csvPath string) error {
	dishes, err := catalog.LoadCSV(csvPath)
	if err != nil {
		return err
	}

	repository := catalog.NewCatalogRepository(db)
	if err := repository.ReplaceCatalog(context.Background(), dishes); err != nil {
		return err
	}

	fmt.Printf("Catalog seeded with %d dishes\n", len(dishes))
	return nil
}
