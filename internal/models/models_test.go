package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/testhelpers"
)

func TestUserUniqueEmailAndUsername(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	testhelpers.CreateUser(t, db, "alice")

	err := db.Create(&models.User{
		Email: "alice@example.com", Username: "other", PasswordHash: "x",
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = db.Create(&models.User{
		Email: "other@example.com", Username: "alice", PasswordHash: "x",
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestIngredientNameNotUniqueAcrossUnits(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	require.NoError(t, db.Create(&models.Ingredient{Name: "salt", MeasurementUnit: "g"}).Error)
	assert.NoError(t, db.Create(&models.Ingredient{Name: "salt", MeasurementUnit: "kg"}).Error)
}

func TestTagSlugUnique(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	testhelpers.CreateTag(t, db, "dinner")

	err := db.Create(&models.Tag{Name: "supper", Color: "#123456", Slug: "dinner"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRelationRowsUniquePerPair(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	salt := testhelpers.CreateIngredient(t, db, "salt", "g")
	recipe := testhelpers.CreateRecipe(t, db, alice, "soup", nil,
		[]testhelpers.IngredientAmount{{Ingredient: salt, Amount: 1}})

	require.NoError(t, db.Create(&models.Favorite{UserID: bob.ID, RecipeID: recipe.ID}).Error)
	err := db.Create(&models.Favorite{UserID: bob.ID, RecipeID: recipe.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, db.Create(&models.CartItem{UserID: bob.ID, RecipeID: recipe.ID}).Error)
	err = db.Create(&models.CartItem{UserID: bob.ID, RecipeID: recipe.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, db.Create(&models.Follow{FollowerID: bob.ID, FolloweeID: alice.ID}).Error)
	err = db.Create(&models.Follow{FollowerID: bob.ID, FolloweeID: alice.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = db.Create(&models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: salt.ID, Amount: 2}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
