package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"musiclabel/internal/types"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// search matches term case-insensitively against any of columns.
func search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}

		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		conditions := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, column := range columns {
			conditions[i] = fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column)
			args[i] = pattern
		}

		return db.Where("("+strings.Join(conditions, " OR ")+")", args...)
	}
}

// paginate counts the filtered rows and fetches one window of them. Every
// order ends with id so rows with equal sort keys keep a stable order.
// Preloads are applied to the fetch only.
func paginate[T any](
	ctx context.Context,
	query *gorm.DB,
	params types.ListParams,
	order string,
	preloads ...string,
) (types.PaginatedResult[T], error) {
	var total int64
	if err := query.Session(&gorm.Session{}).WithContext(ctx).Count(&total).Error; err != nil {
		return types.PaginatedResult[T]{}, err
	}

	fetch := query.Session(&gorm.Session{}).WithContext(ctx)
	for _, preload := range preloads {
		fetch = fetch.Preload(preload)
	}

	items := make([]T, 0, params.Limit)
	if err := fetch.
		Order(order).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error; err != nil {
		return types.PaginatedResult[T]{}, err
	}

	return types.PaginatedResult[T]{
		Items:      items,
		Pagination: types.NewPagination(params.Page, params.Limit, total),
	}, nil
}

func orderFor(sorts map[string]string, sort, fallback string) string {
	if order, ok := sorts[sort]; ok {
		return order
	}
	return sorts[fallback]
}

// constraintError maps constraint violations to the error kinds controllers
// return, or nil when err is not a constraint violation.
func constraintError(err error, conflict *types.AppError, parent string) error {
	switch {
	case conflict != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict
	case parent != "" && errors.Is(err, gorm.ErrForeignKeyViolated):
		return types.NewNotFoundError(parent)
	}
	return nil
}

func exists(ctx context.Context, tx *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
