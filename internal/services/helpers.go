package services

import (
	"gorm.io/gorm"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

type parentCount struct {
	ParentID uint
	Total    int64
}

// countByParent counts rows of model grouped by a foreign key column,
// one query for the whole page instead of one per row.
func countByParent(db *gorm.DB, model interface{}, column string, parentIDs []uint) (map[uint]int64, error) {
	var rows []parentCount
	err := db.Model(model).
		Select(column+" AS parent_id, COUNT(*) AS total").
		Where(column+" IN ?", parentIDs).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.ParentID] = r.Total
	}
	return out, nil
}

// countPivot is countByParent for bare pivot tables that have no model.
func countPivot(db *gorm.DB, table, column string, parentIDs []uint, extra string, extraArgs ...interface{}) (map[uint]int64, error) {
	var rows []parentCount
	query := db.Table(table).
		Select(column+" AS parent_id, COUNT(*) AS total").
		Where(column+" IN ?", parentIDs)
	if extra != "" {
		query = query.Where(extra, extraArgs...)
	}
	if err := query.Group(column).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.ParentID] = r.Total
	}
	return out, nil
}
