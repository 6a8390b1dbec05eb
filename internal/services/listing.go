package services

import (
	"context"

	"newsroom/internal/pagination"

	"gorm.io/gorm"
)

// newestFirst orders by creation time with id as the tie-break, so repeated
// calls paginate identically even when timestamps collide.
var newestFirst = []string{"created_at DESC", "id DESC"}

// Page is one bounded slice of a collection.
type Page[T any] struct {
	Items      []T
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

type listQuery struct {
	resource string
	filter   func(*gorm.DB) *gorm.DB
	preloads []string
	order    []string
}

// listPage counts the filtered collection, rejects empty collections and
// out-of-range pages, then fetches [offset, offset+limit).
func listPage[T any](ctx context.Context, db *gorm.DB, p pagination.Params, q listQuery) (Page[T], error) {
	scoped := func() *gorm.DB {
		tx := db.WithContext(ctx).Model(new(T))
		if q.filter != nil {
			tx = q.filter(tx)
		}
		return tx
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return Page[T]{}, storageFault(err, "count "+q.resource)
	}
	if total == 0 {
		return Page[T]{}, emptyCollection(q.resource)
	}

	totalPages := pagination.TotalPages(total, p.Limit)
	if p.Page > totalPages {
		return Page[T]{}, beyondRange(q.resource, p.Page, totalPages)
	}

	tx := scoped()
	for _, name := range q.preloads {
		tx = tx.Preload(name)
	}
	order := q.order
	if len(order) == 0 {
		order = newestFirst
	}
	for _, o := range order {
		tx = tx.Order(o)
	}

	var items []T
	if err := tx.Offset(p.Offset).Limit(p.Limit).Find(&items).Error; err != nil {
		return Page[T]{}, storageFault(err, "fetch "+q.resource)
	}

	return Page[T]{
		Items:      items,
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
