package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vnkhanh/wild-series-backend/models"
)

// Filter maps column names to the exact value they must hold.
type Filter map[string]interface{}

// Order sorts by one column.
type Order struct {
	Column string
	Desc   bool
}

// IDDesc orders most recently created rows first.
var IDDesc = []Order{{Column: "id", Desc: true}}

// FindAll returns every row of T in storage order.
func FindAll[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	items := []T{}
	if err := db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindBy returns the rows matching filter, sorted by order and capped at
// limit rows when limit > 0.
func FindBy[T any](ctx context.Context, db *gorm.DB, filter Filter, order []Order, limit int) ([]T, error) {
	query := db.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		query = query.Where(map[string]interface{}(filter))
	}
	for _, o := range order {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	items := []T{}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindOneBy returns the first row matching filter or models.ErrNotFound.
func FindOneBy[T any](ctx context.Context, db *gorm.DB, filter Filter) (*T, error) {
	item := new(T)
	err := db.WithContext(ctx).Where(map[string]interface{}(filter)).Take(item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// FindLikeName matches term literally and case-insensitively anywhere in
// column. A blank term returns the same rows as FindAll.
func FindLikeName[T any](ctx context.Context, db *gorm.DB, column, term string) ([]T, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return FindAll[T](ctx, db)
	}

	items := []T{}
	err := db.WithContext(ctx).
		Where(clause.Expr{
			SQL:  `LOWER(?) LIKE ? ESCAPE '\'`,
			Vars: []interface{}{clause.Column{Name: column}, "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"},
		}).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Count trả về số dòng khớp filter.
func Count[T any](ctx context.Context, db *gorm.DB, filter Filter) (int64, error) {
	var total int64
	query := db.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		query = query.Where(map[string]interface{}(filter))
	}
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}
