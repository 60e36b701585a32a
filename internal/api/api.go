package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/service"
)

// SetupAPI wires the services and handlers under /api/v1. The image store is
// optional: without one, image references are stored as-is.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, jwtSecret string, images service.ImageStore) {
	v1 := router.Group("/api/v1")
	{
		authService := service.NewAuthService(db, jwtSecret, redisClient)
		catalogService := service.NewCatalogService(db)
		recipeService := service.NewRecipeService(db, images)
		collectionService := service.NewCollectionService(db)
		shoppingListService := service.NewShoppingListService(db)
		followService := service.NewFollowService(db)

		authHandler := NewAuthHandler(authService)
		userHandler := NewUserHandler(db, authService, followService)
		catalogHandler := NewCatalogHandler(catalogService)
		recipeHandler := NewRecipeHandler(db, recipeService, collectionService, shoppingListService, followService, authService)

		authHandler.RegisterRoutes(v1)
		userHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
	}
}
