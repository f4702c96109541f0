package routes

import (
	"cullinary-backend/internal/api/handlers"
	"cullinary-backend/internal/middleware"
	"cullinary-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App          *fiber.App
	DishHandler  handlers.DishHandler
	UserHandler  handlers.UserHandler
	MenuHandler  handlers.MenuHandler
	SwipeHandler handlers.SwipeHandler
	Middleware   middleware.Middleware
	JWTService   jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Dishes()
	c.Users()
	c.Menus()
	c.GuestRoute()
}

func (c *Config) Dishes() {
	dishes := c.App.Group("/api/v1/dishes")
	{
		dishes.Get("", c.DishHandler.GetDishes)
		dishes.Get("/:id", c.DishHandler.GetDishByID)
		dishes.Post("/:id/image", c.Middleware.AuthMiddleware(c.JWTService), c.DishHandler.UploadDishImage)
	}
}

func (c *Config) Users() {
	users := c.App.Group("/api/v1/users")
	{
		users.Post("/session", c.UserHandler.CreateSession)
		users.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		users.Patch("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateProfile)
		users.Get("/favorites", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.GetFavorites)
		users.Post("/favorites", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.AddFavorite)
		users.Delete("/favorites/:dishID", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.RemoveFavorite)
	}
}

func (c *Config) Menus() {
	menus := c.App.Group("/api/v1/menus", c.Middleware.AuthMiddleware(c.JWTService))
	{
		menus.Post("", c.MenuHandler.CreateMenu)
		menus.Get("/:code", c.MenuHandler.GetMenu)
		menus.Post("/:code/join", c.MenuHandler.JoinMenu)
		menus.Post("/:code/lock", c.MenuHandler.LockMenu)
		menus.Get("/:code/participants", c.MenuHandler.GetParticipants)
		menus.Delete("/:code", c.MenuHandler.ArchiveMenu)
		menus.Post("/:code/invite", c.MenuHandler.Invite)

		menus.Get("/:code/feed", c.SwipeHandler.GetFeed)
		menus.Post("/:code/swipes", c.SwipeHandler.Swipe)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
