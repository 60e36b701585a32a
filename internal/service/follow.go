package service

import (
	"context"
	"errors"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
	"gorm.io/gorm"
)

// DefaultRecipePreviewLimit bounds the recipe preview in subscription
// listings when the caller does not supply recipes_limit.
const DefaultRecipePreviewLimit = 3

// Subscription is one followed author together with a bounded preview of
// their latest recipes and their total recipe count.
type Subscription struct {
	Author       models.User
	Recipes      []models.Recipe
	RecipesCount int64
}

type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow subscribes userID to authorID. Self-follows are rejected here, not
// at the store; duplicate subscriptions surface from the unique index.
func (s *FollowService) Follow(ctx context.Context, userID, authorID uint) (*models.User, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		return nil, err
	}

	follow := models.Follow{FollowerID: userID, FolloweeID: authorID}
	if err := s.db.WithContext(ctx).Create(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}
	return &author, nil
}

func (s *FollowService) Unfollow(ctx context.Context, userID, authorID uint) error {
	var author models.User
	if err := s.db.WithContext(ctx).Select("id").First(&author, "id = ?", authorID).Error; err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// IsFollowing reports whether userID is subscribed to each of authorIDs.
func (s *FollowService) IsFollowing(ctx context.Context, userID uint, authorIDs []uint) (map[uint]bool, error) {
	followed := make(map[uint]bool, len(authorIDs))
	if len(authorIDs) == 0 {
		return followed, nil
	}

	var rows []models.Follow
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id IN ?", userID, authorIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		followed[row.FolloweeID] = true
	}
	return followed, nil
}

// Subscriptions lists the authors userID follows. Each entry carries at most
// recipeLimit preview recipes (newest first) and the author's full recipe
// count, which is independent of the preview bound.
func (s *FollowService) Subscriptions(ctx context.Context, userID uint, recipeLimit int) ([]Subscription, error) {
	if recipeLimit < 0 {
		recipeLimit = DefaultRecipePreviewLimit
	}

	var authors []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.id ASC").
		Find(&authors).Error
	if err != nil {
		return nil, err
	}

	subs := make([]Subscription, 0, len(authors))
	for _, author := range authors {
		var recipes []models.Recipe
		err := s.db.WithContext(ctx).
			Where("author_id = ?", author.ID).
			Order("created_at DESC, id ASC").
			Limit(recipeLimit).
			Find(&recipes).Error
		if err != nil {
			return nil, err
		}

		var count int64
		err = s.db.WithContext(ctx).
			Model(&models.Recipe{}).
			Where("author_id = ?", author.ID).
			Count(&count).Error
		if err != nil {
			return nil, err
		}

		subs = append(subs, Subscription{Author: author, Recipes: recipes, RecipesCount: count})
	}
	return subs, nil
}
