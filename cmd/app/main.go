package main

import (
	"flag"
	"log"

	"cullinary-backend/cmd/config"
	migration "cullinary-backend/cmd/database/migrate"
	"cullinary-backend/cmd/database/seed"
	"cullinary-backend/internal/utils"
)

func main() {
	seedCatalog := flag.Bool("seed", false, "reload the dish catalog from CSV and exit")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if *seedCatalog {
		if err := seed.SeedCatalog(db, utils.GetConfig("CATALOG_CSV_PATH")); err != nil {
			log.Fatalf("failed to seed catalog: %v", err)
		}
		return
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
