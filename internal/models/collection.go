package models

import (
	"time"
)

// Favorite marks a recipe as favorited by a user. Unique per (user, recipe).
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe;index" json:"recipe_id"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// CartItem puts a recipe into a user's shopping cart. Unique per (user, recipe).
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe;index" json:"recipe_id"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
