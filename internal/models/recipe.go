package models

import (
	"time"
)

type Recipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Image       string    `gorm:"size:255" json:"image"`
	Text        string    `gorm:"type:text" json:"text"`
	CookingTime int       `gorm:"not null;check:cooking_time > 0" json:"cooking_time"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      User      `json:"-"`

	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"-"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"-"`
}

// RecipeTag is the recipe/tag join table. The composite primary key doubles
// as the unique (recipe, tag) constraint.
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey" json:"recipe_id"`
	TagID    uint `gorm:"primaryKey" json:"tag_id"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}

// RecipeIngredient is one ingredient line of a recipe. It keeps its own
// surrogate id so aggregation output can be ordered by first appearance.
type RecipeIngredient struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Ingredient   Ingredient `json:"-"`
	Amount       int        `gorm:"not null;check:amount > 0" json:"amount"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
