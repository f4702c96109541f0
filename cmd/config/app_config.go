package config

import (
	"os"
	"time"

	"cullinary-backend/internal/api/handlers"
	"cullinary-backend/internal/api/routes"
	"cullinary-backend/internal/middleware"
	"cullinary-backend/internal/utils"
	"cullinary-backend/internal/utils/storage"
	"cullinary-backend/pkg/catalog"
	"cullinary-backend/pkg/jwt"
	"cullinary-backend/pkg/menu"
	"cullinary-backend/pkg/swipe"
	"cullinary-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

const defaultCatalogCacheTTL = 15 * time.Minute

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	cacheTTL := defaultCatalogCacheTTL
	if raw := utils.GetConfig("CATALOG_CACHE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			cacheTTL = parsed
		}
	}
	catalogCache := catalog.NewCache(cacheTTL)

	// Repository
	userRepository := user.NewUserRepository(db)
	catalogRepository := catalog.NewCatalogRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	swipeRepository := swipe.NewSwipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, catalogRepository, jwtService)
	catalogService := catalog.NewCatalogService(catalogRepository, catalogCache, s3)
	menuService := menu.NewMenuService(menuRepository, userRepository)
	swipeService := swipe.NewSwipeService(swipeRepository, menuRepository, userRepository, catalogService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	dishHandler := handlers.NewDishHandler(catalogService, validator)
	menuHandler := handlers.NewMenuHandler(menuService, validator)
	swipeHandler := handlers.NewSwipeHandler(swipeService, validator)

	// routes
	routesConfig := routes.Config{
		App:          app,
		DishHandler:  dishHandler,
		UserHandler:  userHandler,
		MenuHandler:  menuHandler,
		SwipeHandler: swipeHandler,
		Middleware:   middlewares,
		JWTService:   jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
