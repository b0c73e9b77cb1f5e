package store

import (
	"context"
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/waste3d/vod-platform/internal/domain"
)

// Option is one entry of a choice widget.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ByID loads the record of T with the given primary key. With includeRelated every
// registered collection and reference of T is loaded as well.
func ByID[T any](ctx context.Context, s *Store, id int, includeRelated bool) (*T, error) {
	kind, err := kindFor[T](s)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if includeRelated {
		for _, rel := range kind.Relations {
			db = db.Preload(rel.Field)
		}
	}
	var rec T
	if err := db.First(&rec, id).Error; err != nil {
		return nil, notFound(err, kind, id)
	}
	return &rec, nil
}

// ByCompositeKey loads the record of T whose two primary key columns equal part1 and part2,
// in declaration order. A match on only one column never counts.
func ByCompositeKey[T any](ctx context.Context, s *Store, part1, part2 interface{}) (*T, error) {
	kind, err := kindFor[T](s)
	if err != nil {
		return nil, err
	}
	where, err := s.compositeKey(kind, part1, part2)
	if err != nil {
		return nil, err
	}
	var rec T
	if err := s.db.WithContext(ctx).Where(where[0]).Where(where[1]).Take(&rec).Error; err != nil {
		return nil, notFound(err, kind, part1, part2)
	}
	return &rec, nil
}

func (s *Store) compositeKey(kind *Kind, part1, part2 interface{}) ([2]clause.Eq, error) {
	var where [2]clause.Eq
	sch, err := s.schemaOf(kind)
	if err != nil {
		return where, err
	}
	if len(sch.PrimaryFieldDBNames) != 2 {
		return where, errors.Wrapf(ErrRelationConfig, "%s has %d primary key columns, want 2",
			kind.Collection, len(sch.PrimaryFieldDBNames))
	}
	where[0] = clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: sch.PrimaryFieldDBNames[0]}, Value: part1}
	where[1] = clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: sch.PrimaryFieldDBNames[1]}, Value: part2}
	return where, nil
}

// AllWithIncludes materializes every record of T with all registered relations loaded.
func AllWithIncludes[T any](ctx context.Context, s *Store) ([]T, error) {
	return All[T](s).IncludeRelated().Find(ctx)
}

// Options projects every record of T onto (value, label) pairs, ordered by primary key.
func Options[T any](ctx context.Context, s *Store, valueField, textField string) ([]Option, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for _, name := range []string{valueField, textField} {
		if _, ok := t.FieldByName(name); !ok {
			return nil, errors.Wrapf(domain.ErrInvalidInput, "%s has no field %q", t.Name(), name)
		}
	}

	rows, err := All[T](s).Order(clause.OrderByColumn{
		Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey},
	}).Find(ctx)
	if err != nil {
		return nil, err
	}

	opts := make([]Option, 0, len(rows))
	for i := range rows {
		v := reflect.ValueOf(rows[i])
		opts = append(opts, Option{
			Value: fmt.Sprint(v.FieldByName(valueField).Interface()),
			Label: fmt.Sprint(v.FieldByName(textField).Interface()),
		})
	}
	return opts, nil
}

// CountAll runs one count per entity kind. The counts are independent queries.
func (s *Store) CountAll(ctx context.Context) (domain.Counts, error) {
	var c domain.Counts
	targets := []struct {
		model interface{}
		dst   *int
	}{
		{&domain.Course{}, &c.Courses},
		{&domain.Download{}, &c.Downloads},
		{&domain.Instructor{}, &c.Instructors},
		{&domain.Module{}, &c.Modules},
		{&domain.Video{}, &c.Videos},
		{&domain.User{}, &c.Users},
		{&domain.UserCourse{}, &c.UserCourses},
	}
	for _, tg := range targets {
		n, err := count(ctx, s.db, tg.model)
		if err != nil {
			return domain.Counts{}, err
		}
		*tg.dst = int(n)
	}
	return c, nil
}

func count(ctx context.Context, db *gorm.DB, model interface{}) (int64, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		return 0, errors.Wrapf(err, "count %T", model)
	}
	return n, nil
}
