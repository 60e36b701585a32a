package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/middleware"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/service"
)

type RecipeHandler struct {
	db                  *gorm.DB
	recipeService       *service.RecipeService
	collectionService   *service.CollectionService
	shoppingListService *service.ShoppingListService
	followService       *service.FollowService
	authService         *service.AuthService
}

func NewRecipeHandler(
	db *gorm.DB,
	recipeService *service.RecipeService,
	collectionService *service.CollectionService,
	shoppingListService *service.ShoppingListService,
	followService *service.FollowService,
	authService *service.AuthService,
) *RecipeHandler {
	return &RecipeHandler{
		db:                  db,
		recipeService:       recipeService,
		collectionService:   collectionService,
		shoppingListService: shoppingListService,
		followService:       followService,
		authService:         authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListRecipes)
		recipes.GET("/download_shopping_cart", middleware.AuthMiddleware(h.authService), h.DownloadShoppingCart)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.authService), h.CreateRecipe)
		recipes.PATCH("/:id", middleware.AuthMiddleware(h.authService), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteRecipe)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.authService), h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.authService), h.UnfavoriteRecipe)
		recipes.POST("/:id/shopping_cart", middleware.AuthMiddleware(h.authService), h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", middleware.AuthMiddleware(h.authService), h.RemoveFromCart)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{}

	if raw := c.Query("author"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "author must be an integer id"})
			return
		}
		authorID := uint(parsed)
		filter.AuthorID = &authorID
	}

	// Both the repeated form (?tags=a&tags=b) and the comma form are accepted.
	for _, raw := range c.QueryArray("tags") {
		for _, slug := range strings.Split(raw, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				filter.TagSlugs = append(filter.TagSlugs, slug)
			}
		}
	}

	if raw, ok := c.GetQuery("is_favorited"); ok {
		filter.IsFavorited = &raw
	}
	if raw, ok := c.GetQuery("is_in_shopping_cart"); ok {
		filter.IsInShoppingCart = &raw
	}

	var userID *uint
	if id, ok := middleware.UserID(c); ok {
		userID = &id
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), filter, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	offset, limit := parsePagination(c)
	total := len(recipes)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := recipes[offset:end]

	rc, err := h.recipeContextFor(c, userID, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]RecipeResponse, 0, len(page))
	for _, recipe := range page {
		out = append(out, toRecipeResponse(recipe, rc))
	}
	c.JSON(http.StatusOK, gin.H{"count": total, "results": out})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var userID *uint
	if callerID, ok := middleware.UserID(c); ok {
		userID = &callerID
	}
	rc, err := h.recipeContextFor(c, userID, []models.Recipe{*recipe})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeResponse(*recipe, rc))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rc, err := h.recipeContextFor(c, &userID, []models.Recipe{*recipe})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRecipeResponse(*recipe, rc))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, userID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rc, err := h.recipeContextFor(c, &userID, []models.Recipe{*recipe})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeResponse(*recipe, rc))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	h.addToCollection(c, h.collectionService.AddFavorite)
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	h.removeFromCollection(c, h.collectionService.RemoveFavorite)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addToCollection(c, h.collectionService.AddToCart)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeFromCollection(c, h.collectionService.RemoveFromCart)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	items, err := h.shoppingListService.Aggregate(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			c.Data(http.StatusNotFound, "text/plain; charset=utf-8", []byte("You have no recipes in your shopping cart\n"))
			return
		}
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(service.Render(items)))
}

type collectionAdd func(ctx context.Context, userID, recipeID uint) (*models.Recipe, error)

type collectionRemove func(ctx context.Context, userID, recipeID uint) error

func (h *RecipeHandler) addToCollection(c *gin.Context, add collectionAdd) {
	userID, _ := middleware.UserID(c)
	recipeID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := add(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toShortRecipeResponse(*recipe))
}

func (h *RecipeHandler) removeFromCollection(c *gin.Context, remove collectionRemove) {
	userID, _ := middleware.UserID(c)
	recipeID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := remove(c.Request.Context(), userID, recipeID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// recipeContextFor loads the caller's favorite, cart and follow memberships
// for the given recipes in three batched queries.
func (h *RecipeHandler) recipeContextFor(c *gin.Context, userID *uint, recipes []models.Recipe) (recipeContext, error) {
	rc := recipeContext{
		favorited:  map[uint]bool{},
		inCart:     map[uint]bool{},
		subscribed: map[uint]bool{},
	}
	if userID == nil || len(recipes) == 0 {
		return rc, nil
	}

	recipeIDs := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID)
		authorIDs = append(authorIDs, recipe.AuthorID)
	}

	ctx := c.Request.Context()

	var favorites []models.Favorite
	err := h.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", *userID, recipeIDs).
		Find(&favorites).Error
	if err != nil {
		return rc, err
	}
	for _, row := range favorites {
		rc.favorited[row.RecipeID] = true
	}

	var cartItems []models.CartItem
	err = h.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", *userID, recipeIDs).
		Find(&cartItems).Error
	if err != nil {
		return rc, err
	}
	for _, row := range cartItems {
		rc.inCart[row.RecipeID] = true
	}

	rc.subscribed, err = h.followService.IsFollowing(ctx, *userID, authorIDs)
	if err != nil {
		return rc, err
	}
	return rc, nil
}
