package migration

import (
	"fmt"
	"recipe-catalog/entities"

	"gorm.io/gorm"
)

// Migrate creates the parent tables before the child tables that reference them.
func Migrate(db *gorm.DB) error {
	models := []any{
		&entities.User{},
		&entities.Recipe{},
		&entities.Ingredient{},
		&entities.Instruction{},
		&entities.Tag{},
		&entities.MealType{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("error migrating %T: %w", model, err)
		}
	}
	return nil
}
