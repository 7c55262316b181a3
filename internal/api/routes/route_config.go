package routes

import (
	"recipe-catalog/domain"
	"recipe-catalog/internal/api/handlers"
	"recipe-catalog/internal/api/presenters"
	"recipe-catalog/internal/middleware"
	"recipe-catalog/pkg/jwt"
	"recipe-catalog/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	RecipeHandler handlers.RecipeHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Recipe()
	c.Auth()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessPing)
	})
	c.App.Get("/metrics", metrics.Handler())
}

func (c *Config) Recipe() {
	recipe := c.App.Group("/recipe")
	// static paths are registered before /:id
	{
		recipe.Post("/load", c.RecipeHandler.LoadRecipes)
		recipe.Get("/search", c.RecipeHandler.SearchRecipes)
		recipe.Get("/all", c.RecipeHandler.GetAllRecipes)
		recipe.Get("/:id", c.RecipeHandler.GetRecipeDetail)
		recipe.Put("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UpdateRecipe)
		recipe.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DeleteRecipe)
	}
}

func (c *Config) Auth() {
	auth := c.App.Group("/auth")
	{
		auth.Post("/signup", c.UserHandler.Signup)
		auth.Post("/login", c.UserHandler.Login)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}
