package handlers

import (
	"errors"
	"recipe-catalog/domain"
	"recipe-catalog/internal/api/presenters"
	"recipe-catalog/pkg/importer"
	"recipe-catalog/pkg/logger"
	"recipe-catalog/pkg/recipe"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const HeaderTotalCount = "X-Total-Count"

type (
	RecipeHandler interface {
		LoadRecipes(c *fiber.Ctx) error
		SearchRecipes(c *fiber.Ctx) error
		GetAllRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService   recipe.RecipeService
		importerService importer.ImporterService
		validator       *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, importerService importer.ImporterService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService:   recipeService,
		importerService: importerService,
		validator:       validator,
	}
}

func (h *recipeHandler) LoadRecipes(c *fiber.Ctx) error {
	log := logger.FromFiber(c)
	log.Info("received request to load recipes from external dataset")

	res := h.importerService.LoadRecipes(c.UserContext())
	log.Info("recipe load completed", zap.String("status", string(res.Status)), zap.Int("loaded", res.Loaded))

	status := fiber.StatusOK
	if res.Status == domain.ImportStatusFailed {
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(res)
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	req := new(domain.SearchRecipeRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchRecipes, err)
	}

	recipes, err := h.recipeService.SearchRecipes(c.UserContext(), req.Query)
	if err != nil {
		if errors.Is(err, domain.ErrEmptySearchQuery) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchRecipes, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSearchRecipes, err)
	}

	logger.FromFiber(c).Info("search completed", zap.String("query", req.Query), zap.Int("results", len(recipes)))
	return c.JSON(recipes)
}

func (h *recipeHandler) GetAllRecipes(c *fiber.Ctx) error {
	page := new(domain.PageRequest)
	if err := c.QueryParser(page); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}
	if err := h.validator.Struct(page); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, err)
	}

	recipes, count, err := h.recipeService.GetRecipes(c.UserContext(), *page)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipes, err)
	}

	c.Set(HeaderTotalCount, strconv.FormatInt(count, 10))
	return c.JSON(recipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	id, err := parseRecipeID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, err)
	}

	res, err := h.recipeService.GetRecipeDetail(c.UserContext(), id)
	if err != nil {
		return presenters.ErrorResponse(c, recipeErrorStatus(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return c.JSON(res)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	id, err := parseRecipeID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	req := new(domain.Recipe)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if req.ID == 0 {
		req.ID = id
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.UserContext(), id, *req)
	if err != nil {
		return presenters.ErrorResponse(c, recipeErrorStatus(err), domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	id, err := parseRecipeID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRecipe, err)
	}

	if err := h.recipeService.DeleteRecipe(c.UserContext(), id); err != nil {
		return presenters.ErrorResponse(c, recipeErrorStatus(err), domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func parseRecipeID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidRecipeID
	}
	return id, nil
}

func recipeErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRecipeID):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
