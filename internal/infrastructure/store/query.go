package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type scope = func(*gorm.DB) *gorm.DB

// Query is a lazy, immutable query over all records of T. Nothing is read from the
// database until Find, First or Count is called; every builder call returns a copy.
type Query[T any] struct {
	s        *Store
	kind     *Kind
	err      error
	scopes   []scope
	includes []string
}

// All returns a query over every record of T.
func All[T any](s *Store) Query[T] {
	kind, err := kindFor[T](s)
	return Query[T]{s: s, kind: kind, err: err}
}

func (q Query[T]) with(fn scope) Query[T] {
	scopes := make([]scope, len(q.scopes), len(q.scopes)+1)
	copy(scopes, q.scopes)
	q.scopes = append(scopes, fn)
	return q
}

func (q Query[T]) Where(query interface{}, args ...interface{}) Query[T] {
	return q.with(func(db *gorm.DB) *gorm.DB { return db.Where(query, args...) })
}

func (q Query[T]) Order(value interface{}) Query[T] {
	return q.with(func(db *gorm.DB) *gorm.DB { return db.Order(value) })
}

func (q Query[T]) Limit(n int) Query[T] {
	return q.with(func(db *gorm.DB) *gorm.DB { return db.Limit(n) })
}

// Include eager-loads the named relations; nested paths such as "Course.Instructor" are allowed.
func (q Query[T]) Include(fields ...string) Query[T] {
	includes := make([]string, 0, len(q.includes)+len(fields))
	includes = append(includes, q.includes...)
	q.includes = append(includes, fields...)
	return q
}

// IncludeRelated eager-loads every registered relation of T.
func (q Query[T]) IncludeRelated() Query[T] {
	if q.kind == nil {
		return q
	}
	return q.Include(append(q.kind.Collections(), q.kind.References()...)...)
}

func (q Query[T]) build(ctx context.Context, preload bool) *gorm.DB {
	db := q.s.db.WithContext(ctx).Model(new(T)).Scopes(q.scopes...)
	if preload {
		for _, field := range q.includes {
			db = db.Preload(field)
		}
	}
	return db
}

func (q Query[T]) Find(ctx context.Context) ([]T, error) {
	if q.err != nil {
		return nil, q.err
	}
	var rows []T
	if err := q.build(ctx, true).Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "query %s", q.kind.Collection)
	}
	return rows, nil
}

// First returns the first matching record or domain.ErrNotFound.
func (q Query[T]) First(ctx context.Context) (*T, error) {
	if q.err != nil {
		return nil, q.err
	}
	var row T
	if err := q.build(ctx, true).Take(&row).Error; err != nil {
		return nil, notFound(err, q.kind)
	}
	return &row, nil
}

func (q Query[T]) Count(ctx context.Context) (int64, error) {
	if q.err != nil {
		return 0, q.err
	}
	var n int64
	if err := q.build(ctx, false).Count(&n).Error; err != nil {
		return 0, errors.Wrapf(err, "count %s", q.kind.Collection)
	}
	return n, nil
}
