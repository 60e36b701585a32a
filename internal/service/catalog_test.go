package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/testhelpers"
)

func ingredientNames(list []models.Ingredient) []string {
	names := make([]string, 0, len(list))
	for _, item := range list {
		names = append(names, item.Name)
	}
	return names
}

func TestSearchIngredientsPrefixRanksFirst(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	testhelpers.CreateIngredient(t, db, "sea salt", "g")
	testhelpers.CreateIngredient(t, db, "salt", "g")
	testhelpers.CreateIngredient(t, db, "salted butter", "g")
	testhelpers.CreateIngredient(t, db, "pepper", "g")

	found, err := svc.SearchIngredients(ctx, "salt")
	require.NoError(t, err)

	// Prefix matches come before substring matches, alphabetical inside
	// each rank.
	assert.Equal(t, []string{"salt", "salted butter", "sea salt"}, ingredientNames(found))
}

func TestSearchIngredientsCaseInsensitive(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	testhelpers.CreateIngredient(t, db, "Salt", "g")

	found, err := svc.SearchIngredients(ctx, "sAlT")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Salt", found[0].Name)
}

func TestSearchIngredientsEmptyTermListsAll(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	testhelpers.CreateIngredient(t, db, "pepper", "g")
	testhelpers.CreateIngredient(t, db, "flour", "g")

	found, err := svc.SearchIngredients(ctx, "  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"flour", "pepper"}, ingredientNames(found))
}

func TestListTags(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	testhelpers.CreateTag(t, db, "dinner")
	testhelpers.CreateTag(t, db, "breakfast")

	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Name)
	assert.Equal(t, "dinner", tags[1].Name)
}

func TestGetTagAndIngredient(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	tag := testhelpers.CreateTag(t, db, "dinner")
	ingredient := testhelpers.CreateIngredient(t, db, "salt", "g")

	gotTag, err := svc.GetTag(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "dinner", gotTag.Name)

	gotIngredient, err := svc.GetIngredient(ctx, ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "g", gotIngredient.MeasurementUnit)

	_, err = svc.GetTag(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = svc.GetIngredient(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
