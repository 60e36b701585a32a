package service

import (
	"context"
	"errors"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
	"gorm.io/gorm"
)

// CollectionService implements the add/remove semantics shared by favorites
// and the shopping cart. Add is a single insert that leans on the composite
// unique index: a duplicate attempt, racing or not, comes back as
// gorm.ErrDuplicatedKey and is reported as a benign conflict instead of a
// check-then-insert pair of statements.
type CollectionService struct {
	db *gorm.DB
}

func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

func (s *CollectionService) AddFavorite(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	return s.add(ctx, &models.Favorite{UserID: userID, RecipeID: recipeID}, recipeID)
}

func (s *CollectionService) RemoveFavorite(ctx context.Context, userID, recipeID uint) error {
	return s.remove(ctx, &models.Favorite{}, userID, recipeID)
}

func (s *CollectionService) AddToCart(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	return s.add(ctx, &models.CartItem{UserID: userID, RecipeID: recipeID}, recipeID)
}

func (s *CollectionService) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	return s.remove(ctx, &models.CartItem{}, userID, recipeID)
}

func (s *CollectionService) add(ctx context.Context, row interface{}, recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyInCollection
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *CollectionService) remove(ctx context.Context, model interface{}, userID, recipeID uint) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("id").First(&recipe, "id = ?", recipeID).Error; err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotInCollection
	}
	return nil
}
