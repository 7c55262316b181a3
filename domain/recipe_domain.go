package domain

import (
	"errors"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSearchRecipes   = "failed to search recipes"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrInvalidRecipeID  = errors.New("invalid recipe id")
	ErrEmptySearchQuery = errors.New("search query must not be empty")
)

type (
	// Recipe is the wire shape shared by the upstream catalog and the public API.
	// Child collections travel as plain strings.
	Recipe struct {
		ID                 int64    `json:"id" validate:"required,gt=0"`
		Name               string   `json:"name" validate:"required"`
		Ingredients        []string `json:"ingredients"`
		Instructions       []string `json:"instructions"`
		PrepTimeMinutes    int      `json:"prepTimeMinutes" validate:"min=0"`
		CookTimeMinutes    int      `json:"cookTimeMinutes" validate:"min=0"`
		Servings           int      `json:"servings" validate:"min=0"`
		Difficulty         string   `json:"difficulty"`
		Cuisine            string   `json:"cuisine"`
		CaloriesPerServing int      `json:"caloriesPerServing" validate:"min=0"`
		Tags               []string `json:"tags"`
		UserID             int64    `json:"userId"`
		Image              string   `json:"image"`
		Rating             float64  `json:"rating"`
		ReviewCount        int      `json:"reviewCount" validate:"min=0"`
		MealType           []string `json:"mealType"`
	}

	SearchRecipeRequest struct {
		Query string `query:"query"`
	}
)
