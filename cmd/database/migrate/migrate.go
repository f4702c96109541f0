package migration

import (
	"fmt"
	"log"

	"cullinary-backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Dish{}); err != nil {
		log.Fatalf("Error migrating dish database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserFavorite{}); err != nil {
		log.Fatalf("Error migrating user favorite database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecentMenu{}); err != nil {
		log.Fatalf("Error migrating recent menu database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Menu{}); err != nil {
		log.Fatalf("Error migrating menu database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MenuParticipant{}); err != nil {
		log.Fatalf("Error migrating menu participant database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MenuMatch{}); err != nil {
		log.Fatalf("Error migrating menu match database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Swipe{}); err != nil {
		log.Fatalf("Error migrating swipe database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
