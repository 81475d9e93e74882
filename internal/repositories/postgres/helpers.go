package postgres

import (
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// applyPaginationAndSort orders by sortBy only when it is in allowed; anything else falls back to fallback.
func applyPaginationAndSort(query *gorm.DB, allowed map[string]bool, fallback, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	column := fallback
	if allowed[sortBy] {
		column = sortBy
	}

	direction := "desc"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "asc"
	}
	// id breaks ties so consecutive pages never overlap
	query = query.Order(column + " " + direction).Order("id " + direction)

	switch {
	case limit <= 0:
		limit = defaultPageSize
	case limit > maxPageSize:
		limit = maxPageSize
	}
	query = query.Limit(limit)

	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

func pickDB(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
