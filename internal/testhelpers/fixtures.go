package testhelpers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
)

// CreateUser inserts a user with a derived email/username and returns it.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        fmt.Sprintf("%s@example.com", username),
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTag inserts a tag whose color and slug are derived from the name.
func CreateTag(t *testing.T, db *gorm.DB, name string) *models.Tag {
	t.Helper()

	tag := &models.Tag{
		Name:  name,
		Color: fmt.Sprintf("#%06X", len(name)*111111%0xFFFFFF),
		Slug:  name,
	}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// CreateIngredient inserts an ingredient.
func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()

	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

// IngredientAmount pairs an ingredient with an amount for CreateRecipe.
type IngredientAmount struct {
	Ingredient *models.Ingredient
	Amount     int
}

// CreateRecipe inserts a recipe with its tag and ingredient join rows.
func CreateRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, tags []*models.Tag, ingredients []IngredientAmount) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Name:        name,
		Image:       "http://example.com/" + name + ".png",
		Text:        "How to cook " + name,
		CookingTime: 10,
		AuthorID:    author.ID,
	}
	require.NoError(t, db.Create(recipe).Error)

	for _, tag := range tags {
		require.NoError(t, db.Create(&models.RecipeTag{RecipeID: recipe.ID, TagID: tag.ID}).Error)
	}
	for _, item := range ingredients {
		require.NoError(t, db.Create(&models.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: item.Ingredient.ID,
			Amount:       item.Amount,
		}).Error)
	}
	return recipe
}
