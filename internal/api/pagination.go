package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 6

// parsePagination reads page/limit query parameters. Foodgram's frontend
// pages by 6; out-of-range values fall back to the defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	return (page - 1) * limit, limit
}
