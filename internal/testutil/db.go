// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"fmt"
	migration "recipe-catalog/cmd/database/migrate"
	"recipe-catalog/entities"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory SQLite database with foreign keys enforced
// and every table migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

// CountChildren returns the number of child rows of every kind owned by recipeID.
func CountChildren(t testing.TB, db *gorm.DB, recipeID int64) map[string]int64 {
	t.Helper()

	counts := make(map[string]int64, 4)
	for name, model := range map[string]any{
		"ingredients":  &entities.Ingredient{},
		"instructions": &entities.Instruction{},
		"tags":         &entities.Tag{},
		"meal_types":   &entities.MealType{},
	} {
		var n int64
		require.NoError(t, db.Model(model).Where("recipe_id = ?", recipeID).Count(&n).Error)
		counts[name] = n
	}
	return counts
}
