package utils

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"sinar-terang/models"
)

const maxPageLimit = 100

func GetPaginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func NewPaginationMeta(page, limit, totalItems int) models.PaginationMeta {
	totalPages := 0
	if totalItems > 0 && limit > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}
	return models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

func GenerateLinks(c *gin.Context, meta models.PaginationMeta) models.PaginationLinks {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}

	query := c.Request.URL.Query()
	makeURL := func(pageNum int) string {
		params := url.Values{}
		for key, values := range query {
			if key == "page" {
				continue
			}
			for _, value := range values {
				params.Add(key, value)
			}
		}
		params.Set("page", strconv.Itoa(pageNum))
		params.Set("limit", strconv.Itoa(meta.Limit))
		return fmt.Sprintf("%s://%s%s?%s", scheme, c.Request.Host, c.Request.URL.Path, params.Encode())
	}

	links := models.PaginationLinks{Self: makeURL(meta.Page)}
	if meta.Page > 1 {
		links.Prev = makeURL(meta.Page - 1)
	}
	if meta.Page < meta.TotalPages {
		links.Next = makeURL(meta.Page + 1)
	}
	return links
}

// PageResponse wraps one page of results in the HATEOAS envelope.
func PageResponse[T any](c *gin.Context, message string, page models.Page[T]) models.HATEOASResponse {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return models.HATEOASResponse{
		Success: true,
		Message: message,
		Data:    items,
		Meta:    page.Meta,
		Links:   GenerateLinks(c, page.Meta),
	}
}
