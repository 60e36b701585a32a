package database

import (
	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
)

// RunMigrations brings the schema up to date. Join and relation tables carry
// the composite unique indexes the toggle services rely on, so they must be
// migrated together with their parents.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Ingredient{},
		&models.Tag{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipeTag{},
		&models.Favorite{},
		&models.CartItem{},
	)
}
