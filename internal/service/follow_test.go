package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/testhelpers"
)

func TestFollow(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")

	author, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", author.Username)

	_, err = svc.Follow(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrAlreadyFollowing)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowSelf(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewFollowService(db)

	alice := testhelpers.CreateUser(t, db, "alice")
	_, err := svc.Follow(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollowUnknownAuthor(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewFollowService(db)

	alice := testhelpers.CreateUser(t, db, "alice")
	_, err := svc.Follow(context.Background(), alice.ID, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUnfollow(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")

	err := svc.Unfollow(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)

	_, err = svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

	err = svc.Unfollow(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)
}

func TestIsFollowing(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	carol := testhelpers.CreateUser(t, db, "carol")

	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	followed, err := svc.IsFollowing(ctx, alice.ID, []uint{bob.ID, carol.ID})
	require.NoError(t, err)
	assert.True(t, followed[bob.ID])
	assert.False(t, followed[carol.ID])

	followed, err = svc.IsFollowing(ctx, alice.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, followed)
}

func TestSubscriptionsPreviewLimitAndCount(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	salt := testhelpers.CreateIngredient(t, db, "salt", "g")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var ids []uint
	for i := 0; i < 5; i++ {
		recipe := testhelpers.CreateRecipe(t, db, bob, "dish", nil,
			[]testhelpers.IngredientAmount{{Ingredient: salt, Amount: 1}})
		setCreatedAt(t, db, recipe.ID, base.Add(time.Duration(i)*time.Hour))
		ids = append(ids, recipe.ID)
	}

	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	subs, err := svc.Subscriptions(ctx, alice.ID, 2)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	// The preview is bounded, the count is not.
	assert.Equal(t, "bob", subs[0].Author.Username)
	assert.Equal(t, int64(5), subs[0].RecipesCount)
	require.Len(t, subs[0].Recipes, 2)
	assert.Equal(t, ids[4], subs[0].Recipes[0].ID)
	assert.Equal(t, ids[3], subs[0].Recipes[1].ID)
}

func TestSubscriptionsDefaultPreviewLimit(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	salt := testhelpers.CreateIngredient(t, db, "salt", "g")
	for i := 0; i < 5; i++ {
		testhelpers.CreateRecipe(t, db, bob, "dish", nil,
			[]testhelpers.IngredientAmount{{Ingredient: salt, Amount: 1}})
	}

	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	subs, err := svc.Subscriptions(ctx, alice.ID, -1)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Len(t, subs[0].Recipes, DefaultRecipePreviewLimit)
}

func TestSubscriptionsEmpty(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewFollowService(db)

	alice := testhelpers.CreateUser(t, db, "alice")
	subs, err := svc.Subscriptions(context.Background(), alice.ID, DefaultRecipePreviewLimit)
	require.NoError(t, err)
	assert.Empty(t, subs)
}
