package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"recipe-catalog/internal/api/handlers"
	"recipe-catalog/internal/api/routes"
	"recipe-catalog/internal/middleware"
	"recipe-catalog/internal/utils"
	"recipe-catalog/internal/utils/mailing"
	"recipe-catalog/pkg/importer"
	"recipe-catalog/pkg/jwt"
	"recipe-catalog/pkg/metrics"
	"recipe-catalog/pkg/recipe"
	"recipe-catalog/pkg/user"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

// NewApp builds every repository, service and handler explicitly from cfg and
// returns the fiber app plus a closer for the access log.
func NewApp(db *gorm.DB, cfg utils.Config) (*fiber.App, io.Closer, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: !cfg.IsProduction(),
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	accessLog, err := openAccessLog(cfg.AccessLogPath)
	if err != nil {
		return nil, nil, err
	}
	app.Use(middlewares.RequestIDMiddleware())
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     accessLog,
	}))
	app.Use(middlewares.LoggerMiddleware())
	app.Use(metrics.Middleware())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: 1 * time.Second,
	}))

	// utils
	mailer := mailing.NewMailer(mailing.LoadMailConfig(cfg))
	httpClient := importer.NewHTTPClient(cfg.RecipesSourceTimeout)

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	userService, err := user.NewUserService(userRepository, jwtService, mailer, cfg.BcryptCost)
	if err != nil {
		_ = accessLog.Close()
		return nil, nil, err
	}
	recipeService := recipe.NewRecipeService(recipeRepository)
	importerService := importer.NewImporterService(recipeRepository, httpClient, cfg.RecipesSourceURL)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, importerService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		RecipeHandler: recipeHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, accessLog, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func openAccessLog(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	return file, nil
}
