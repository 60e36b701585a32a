package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/middleware"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/models"
	"github.com/MakarovPetr2004/foodgram-project-react/internal/service"
)

type UserHandler struct {
	db            *gorm.DB
	authService   *service.AuthService
	followService *service.FollowService
}

func NewUserHandler(db *gorm.DB, authService *service.AuthService, followService *service.FollowService) *UserHandler {
	return &UserHandler{
		db:            db,
		authService:   authService,
		followService: followService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListUsers)
		users.GET("/me", middleware.AuthMiddleware(h.authService), h.Me)
		users.GET("/subscriptions", middleware.AuthMiddleware(h.authService), h.Subscriptions)
		users.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetUser)
		users.POST("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Unsubscribe)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	offset, limit := parsePagination(c)

	var users []models.User
	err := h.db.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}

	subscribed := map[uint]bool{}
	if callerID, ok := middleware.UserID(c); ok {
		ids := make([]uint, 0, len(users))
		for _, user := range users {
			ids = append(ids, user.ID)
		}
		subscribed, err = h.followService.IsFollowing(c.Request.Context(), callerID, ids)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user, subscribed[user.ID]))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user, false))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	isSubscribed := false
	if callerID, ok := middleware.UserID(c); ok {
		followed, err := h.followService.IsFollowing(c.Request.Context(), callerID, []uint{id})
		if err != nil {
			respondServiceError(c, err)
			return
		}
		isSubscribed = followed[id]
	}
	c.JSON(http.StatusOK, toUserResponse(*user, isSubscribed))
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	recipeLimit := service.DefaultRecipePreviewLimit
	if raw := c.Query("recipes_limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recipes_limit must be a non-negative integer"})
			return
		}
		recipeLimit = parsed
	}

	subs, err := h.followService.Subscriptions(c.Request.Context(), userID, recipeLimit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	offset, limit := parsePagination(c)
	if offset > len(subs) {
		offset = len(subs)
	}
	end := offset + limit
	if end > len(subs) {
		end = len(subs)
	}

	out := make([]SubscriptionResponse, 0, end-offset)
	for _, sub := range subs[offset:end] {
		out = append(out, toSubscriptionResponse(sub))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(subs), "results": out})
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	authorID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	author, err := h.followService.Follow(c.Request.Context(), userID, authorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sub, err := h.subscriptionFor(c, userID, *author)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	authorID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.followService.Unfollow(c.Request.Context(), userID, authorID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// subscriptionFor builds the subscription payload for a freshly followed
// author, mirroring the listing entry shape.
func (h *UserHandler) subscriptionFor(c *gin.Context, userID uint, author models.User) (*SubscriptionResponse, error) {
	recipeLimit := service.DefaultRecipePreviewLimit
	if raw := c.Query("recipes_limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			recipeLimit = parsed
		}
	}

	var recipes []models.Recipe
	err := h.db.WithContext(c.Request.Context()).
		Where("author_id = ?", author.ID).
		Order("created_at DESC, id ASC").
		Limit(recipeLimit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	var count int64
	err = h.db.WithContext(c.Request.Context()).
		Model(&models.Recipe{}).
		Where("author_id = ?", author.ID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	sub := toSubscriptionResponse(service.Subscription{
		Author:       author,
		Recipes:      recipes,
		RecipesCount: count,
	})
	return &sub, nil
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
