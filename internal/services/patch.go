package services

import (
	"context"
	"errors"

	"github.com/hubinova/backend/pkg/apperr"
	"gorm.io/gorm"
)

// Patch maps column names to the values a merge-patch update writes. Columns
// absent from the map keep their stored value.
type Patch map[string]interface{}

// SetField records v under column when the client sent the field. A pointer
// to the zero value (an explicit "") is a real value and overwrites.
func SetField[T any](p Patch, column string, v *T) {
	if v != nil {
		p[column] = *v
	}
}

func (p Patch) Empty() bool { return len(p) == 0 }

// scope returns a fresh query chain for one statement; chains are never reused.
type scope func() *gorm.DB

func modelScope(db *gorm.DB, ctx context.Context) scope {
	return func() *gorm.DB { return db.WithContext(ctx) }
}

func tableScope(db *gorm.DB, ctx context.Context, table string) scope {
	return func() *gorm.DB { return db.WithContext(ctx).Table(table) }
}

// storeError maps gorm errors onto the error taxonomy.
func storeError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(what + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict(what + " already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.Conflict(what + " is referenced by other records")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperr.Upstream(err, "request cancelled")
	default:
		return apperr.Upstream(err, "database error")
	}
}

func findByID[T any](s scope, id uint, what string) (*T, error) {
	var rec T
	if err := s().First(&rec, id).Error; err != nil {
		return nil, storeError(err, what)
	}
	return &rec, nil
}

// patchByID applies p to the record with id and returns the stored result.
// An empty patch returns the record untouched, updated_at included.
func patchByID[T any](s scope, id uint, p Patch, what string) (*T, error) {
	rec, err := findByID[T](s, id, what)
	if err != nil {
		return nil, err
	}
	if p.Empty() {
		return rec, nil
	}

	if err := s().Model(rec).Updates(map[string]interface{}(p)).Error; err != nil {
		return nil, storeError(err, what)
	}
	return findByID[T](s, id, what)
}

func deleteByID[T any](s scope, id uint, what string) error {
	result := s().Delete(new(T), id)
	if result.Error != nil {
		return storeError(result.Error, what)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(what + " not found")
	}
	return nil
}

func countRows[T any](ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	if err := db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, storeError(err, "count")
	}
	return n, nil
}
