package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ShoppingListHeader is the first line of the rendered report.
const ShoppingListHeader = "Shopping list:"

// ShoppingListItem is one aggregated line of a user's shopping list.
// Ingredients are grouped by (name, measurement unit): the same name in two
// different units stays as two lines.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}

type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Aggregate sums ingredient amounts over every recipe in the user's cart.
// Output order follows the first appearance of each (name, unit) pair among
// the recipe ingredient lines, so it is stable for a given data snapshot.
// An empty cart returns ErrEmptyCart.
func (s *ShoppingListService) Aggregate(ctx context.Context, userID uint) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := s.db.WithContext(ctx).
		Table("cart_items").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = cart_items.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("MIN(recipe_ingredients.id) ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	return items, nil
}

// Render produces the plain-text report: a fixed header, a blank line, then
// one line per aggregated ingredient.
func Render(items []ShoppingListItem) string {
	var b strings.Builder
	b.WriteString(ShoppingListHeader + "\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%s — %d %s\n", item.Name, item.Amount, item.MeasurementUnit)
	}
	return b.String()
}
