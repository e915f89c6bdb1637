package services

import (
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// pageFilters normalizes 1-based page and size query values.
func pageFilters(page, size int) (repositories.ListFilters, int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return repositories.ListFilters{Limit: size, Offset: (page - 1) * size}, page, size
}
