package tools

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const DEFAULT_PAGE_LIMIT = 20
const MAX_PAGE_LIMIT = 100

type PaginationMetadata struct {
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	Limit       int `json:"limit"`
}

// GetPaginationParams parses page and limit from the query string.
func GetPaginationParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = DEFAULT_PAGE_LIMIT
	}
	if limit > MAX_PAGE_LIMIT {
		limit = MAX_PAGE_LIMIT
	}
	return page, limit
}

func NewPaginationMetadata(total, page, limit int) PaginationMetadata {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PaginationMetadata{TotalItems: total, TotalPages: pages, CurrentPage: page, Limit: limit}
}

func Offset(page, limit int) int {
	return (page - 1) * limit
}
