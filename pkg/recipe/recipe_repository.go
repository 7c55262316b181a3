package recipe

import (
	"context"
	"recipe-catalog/entities"
	"strings"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id int64) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, limit, offset int) ([]*entities.Recipe, int64, error)
		SearchRecipes(ctx context.Context, query string) ([]*entities.Recipe, error)
		ReplaceRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id int64) error
		CountRecipes(ctx context.Context) (int64, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

var childModels = []any{
	&entities.Ingredient{},
	&entities.Instruction{},
	&entities.Tag{},
	&entities.MealType{},
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", orderByID).
		Preload("Instructions", orderByID).
		Preload("Tags", orderByID).
		Preload("MealTypes", orderByID)
}

// CreateRecipe inserts the recipe and its children inside GORM's default
// transaction. An existing id is a primary key violation, not an update.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id int64) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := withChildren(r.db.WithContext(ctx)).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, limit, offset int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	query := withChildren(r.db.WithContext(ctx)).Order("id asc")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) SearchRecipes(ctx context.Context, query string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	if err := withChildren(r.db.WithContext(ctx)).
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(cuisine) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("id asc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ReplaceRecipe overwrites the scalar columns of an existing recipe and swaps
// every child collection for the one carried by recipe.
func (r *recipeRepository) ReplaceRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Recipe
		if err := tx.Select("id", "created_at").Where("id = ?", recipe.ID).First(&existing).Error; err != nil {
			return err
		}
		recipe.CreatedAt = existing.CreatedAt

		if err := deleteChildren(tx, recipe.ID); err != nil {
			return err
		}

		return tx.Save(recipe).Error
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, id); err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&entities.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *recipeRepository) CountRecipes(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func deleteChildren(tx *gorm.DB, recipeID int64) error {
	for _, model := range childModels {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
