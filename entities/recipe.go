// File: entities/recipe.go
package entities

// Recipe ids come from the upstream catalog and are never generated locally.
type Recipe struct {
	ID                 int64   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name               string  `gorm:"index" json:"name"`
	Cuisine            string  `gorm:"index" json:"cuisine"`
	Difficulty         string  `json:"difficulty"`
	PrepTimeMinutes    int     `json:"prep_time_minutes"`
	CookTimeMinutes    int     `json:"cook_time_minutes"`
	Servings           int     `json:"servings"`
	CaloriesPerServing int     `json:"calories_per_serving"`
	Image              string  `json:"image"`
	Rating             float64 `json:"rating"`
	ReviewCount        int     `json:"review_count"`
	UserID             int64   `json:"user_id"`

	Ingredients  []Ingredient  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Instructions []Instruction `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tags         []Tag         `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	MealTypes    []MealType    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Timestamp
}

type Ingredient struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	RecipeID   int64  `gorm:"not null;index" json:"recipe_id"`
	Ingredient string `gorm:"type:text" json:"ingredient"`
}

type Instruction struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RecipeID int64  `gorm:"not null;index" json:"recipe_id"`
	Step     string `gorm:"type:text" json:"step"`
}

type Tag struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RecipeID int64  `gorm:"not null;index" json:"recipe_id"`
	Tag      string `json:"tag"`
}

type MealType struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RecipeID int64  `gorm:"not null;index" json:"recipe_id"`
	MealType string `json:"meal_type"`
}
