package api

import (
	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/service"
)

// Request bodies.

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type RecipeIngredientRequest struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required,gt=0"`
}

type RecipeRequest struct {
	Name        string                    `json:"name" binding:"required"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required,gt=0"`
	Image       string                    `json:"image"`
	Tags        []uint                    `json:"tags" binding:"required"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" binding:"required,dive"`
}

func (r RecipeRequest) toInput() service.RecipeInput {
	lines := make([]service.IngredientInput, 0, len(r.Ingredients))
	for _, line := range r.Ingredients {
		lines = append(lines, service.IngredientInput{ID: line.ID, Amount: line.Amount})
	}
	return service.RecipeInput{
		Name:        r.Name,
		Image:       r.Image,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		TagIDs:      r.Tags,
		Ingredients: lines,
	}
}

// Response shapes: plain composed structs per endpoint, built by explicit
// mapping functions.

type UserResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Tags             []models.Tag               `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
}

// ShortRecipeResponse is the shortened recipe representation returned by the
// collection toggles and subscription previews.
type ShortRecipeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

type SubscriptionResponse struct {
	UserResponse
	RecipesCount int64                 `json:"recipes_count"`
	Recipes      []ShortRecipeResponse `json:"recipes"`
}

func toUserResponse(user models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

func toShortRecipeResponse(recipe models.Recipe) ShortRecipeResponse {
	return ShortRecipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// recipeContext carries the per-caller membership lookups needed to fill the
// computed fields of a recipe response.
type recipeContext struct {
	favorited  map[uint]bool
	inCart     map[uint]bool
	subscribed map[uint]bool
}

func toRecipeResponse(recipe models.Recipe, rc recipeContext) RecipeResponse {
	ingredients := make([]RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		ingredients = append(ingredients, RecipeIngredientResponse{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		})
	}

	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	return RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           toUserResponse(recipe.Author, rc.subscribed[recipe.AuthorID]),
		Ingredients:      ingredients,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		IsFavorited:      rc.favorited[recipe.ID],
		IsInShoppingCart: rc.inCart[recipe.ID],
	}
}

func toSubscriptionResponse(sub service.Subscription) SubscriptionResponse {
	recipes := make([]ShortRecipeResponse, 0, len(sub.Recipes))
	for _, recipe := range sub.Recipes {
		recipes = append(recipes, toShortRecipeResponse(recipe))
	}
	return SubscriptionResponse{
		UserResponse: toUserResponse(sub.Author, true),
		RecipesCount: sub.RecipesCount,
		Recipes:      recipes,
	}
}
