package recipe

import (
	"recipe-catalog/domain"
	"recipe-catalog/entities"
)

// ToEntity expands the string collections of r into child rows owned by r.ID.
func ToEntity(r domain.Recipe) *entities.Recipe {
	recipe := &entities.Recipe{
		ID:                 r.ID,
		Name:               r.Name,
		Cuisine:            r.Cuisine,
		Difficulty:         r.Difficulty,
		PrepTimeMinutes:    r.PrepTimeMinutes,
		CookTimeMinutes:    r.CookTimeMinutes,
		Servings:           r.Servings,
		CaloriesPerServing: r.CaloriesPerServing,
		Image:              r.Image,
		Rating:             r.Rating,
		ReviewCount:        r.ReviewCount,
		UserID:             r.UserID,
	}

	recipe.Ingredients = make([]entities.Ingredient, 0, len(r.Ingredients))
	for _, v := range r.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, entities.Ingredient{RecipeID: r.ID, Ingredient: v})
	}
	recipe.Instructions = make([]entities.Instruction, 0, len(r.Instructions))
	for _, v := range r.Instructions {
		recipe.Instructions = append(recipe.Instructions, entities.Instruction{RecipeID: r.ID, Step: v})
	}
	recipe.Tags = make([]entities.Tag, 0, len(r.Tags))
	for _, v := range r.Tags {
		recipe.Tags = append(recipe.Tags, entities.Tag{RecipeID: r.ID, Tag: v})
	}
	recipe.MealTypes = make([]entities.MealType, 0, len(r.MealType))
	for _, v := range r.MealType {
		recipe.MealTypes = append(recipe.MealTypes, entities.MealType{RecipeID: r.ID, MealType: v})
	}

	return recipe
}

// ToDomain projects child rows back to plain strings. Collections are never nil
// so they serialise as [] rather than null.
func ToDomain(recipe *entities.Recipe) domain.Recipe {
	r := domain.Recipe{
		ID:                 recipe.ID,
		Name:               recipe.Name,
		PrepTimeMinutes:    recipe.PrepTimeMinutes,
		CookTimeMinutes:    recipe.CookTimeMinutes,
		Servings:           recipe.Servings,
		Difficulty:         recipe.Difficulty,
		Cuisine:            recipe.Cuisine,
		CaloriesPerServing: recipe.CaloriesPerServing,
		UserID:             recipe.UserID,
		Image:              recipe.Image,
		Rating:             recipe.Rating,
		ReviewCount:        recipe.ReviewCount,
		Ingredients:        make([]string, 0, len(recipe.Ingredients)),
		Instructions:       make([]string, 0, len(recipe.Instructions)),
		Tags:               make([]string, 0, len(recipe.Tags)),
		MealType:           make([]string, 0, len(recipe.MealTypes)),
	}

	for _, v := range recipe.Ingredients {
		r.Ingredients = append(r.Ingredients, v.Ingredient)
	}
	for _, v := range recipe.Instructions {
		r.Instructions = append(r.Instructions, v.Step)
	}
	for _, v := range recipe.Tags {
		r.Tags = append(r.Tags, v.Tag)
	}
	for _, v := range recipe.MealTypes {
		r.MealType = append(r.MealType, v.MealType)
	}

	return r
}

func toDomainList(recipes []*entities.Recipe) []domain.Recipe {
	res := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		res = append(res, ToDomain(recipe))
	}
	return res
}
