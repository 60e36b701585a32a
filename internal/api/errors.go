package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MakarovPetr2004/foodgram-project-react/internal/service"
)

// badRequestErrors are recovered locally into a 400 with the sentinel's
// message. Conflicts deliberately map to 400 (not 409) to keep the existing
// API contract.
var badRequestErrors = []error{
	service.ErrInvalidFilterValue,
	service.ErrNoIngredients,
	service.ErrNoTags,
	service.ErrDuplicateIngredient,
	service.ErrUnknownIngredient,
	service.ErrUnknownTag,
	service.ErrAlreadyInCollection,
	service.ErrNotInCollection,
	service.ErrSelfFollow,
	service.ErrAlreadyFollowing,
	service.ErrNotFollowing,
	service.ErrUserExists,
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrNotRecipeAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		for _, sentinel := range badRequestErrors {
			if errors.Is(err, sentinel) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
