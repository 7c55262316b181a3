package recipe

import (
	"context"
	"errors"
	"fmt"
	"recipe-catalog/domain"
	"strings"

	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, page domain.PageRequest) ([]domain.Recipe, int64, error)
		GetRecipeDetail(ctx context.Context, id int64) (domain.Recipe, error)
		SearchRecipes(ctx context.Context, query string) ([]domain.Recipe, error)
		UpdateRecipe(ctx context.Context, id int64, req domain.Recipe) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, id int64) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
	}
)

func NewRecipeService(recipeRepository RecipeRepository) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, page domain.PageRequest) ([]domain.Recipe, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}
	return toDomainList(recipes), count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, id int64) (domain.Recipe, error) {
	if id <= 0 {
		return domain.Recipe{}, domain.ErrInvalidRecipeID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return ToDomain(recipe), nil
}

func (s *recipeService) SearchRecipes(ctx context.Context, query string) ([]domain.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptySearchQuery
	}

	recipes, err := s.recipeRepository.SearchRecipes(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return toDomainList(recipes), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id int64, req domain.Recipe) (domain.Recipe, error) {
	if id <= 0 {
		return domain.Recipe{}, domain.ErrInvalidRecipeID
	}
	if req.ID != 0 && req.ID != id {
		return domain.Recipe{}, domain.ErrInvalidRecipeID
	}
	req.ID = id

	if err := s.recipeRepository.ReplaceRecipe(ctx, ToEntity(req)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, fmt.Errorf("update recipe %d: %w", id, err)
	}

	return s.GetRecipeDetail(ctx, id)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidRecipeID
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	return nil
}
