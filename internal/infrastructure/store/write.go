package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm/clause"

	"github.com/waste3d/vod-platform/internal/domain"
)

// Create inserts rec. Relation fields are not written.
func Create[T any](ctx context.Context, s *Store, rec *T) error {
	kind, err := kindFor[T](s)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error; err != nil {
		return errors.Wrapf(err, "create %s", kind.Collection)
	}
	return nil
}

// Ensure inserts rec unless a row with the same primary key already exists. It
// reports whether a row was inserted and is safe to race with itself.
func Ensure[T any](ctx context.Context, s *Store, rec *T) (bool, error) {
	kind, err := kindFor[T](s)
	if err != nil {
		return false, err
	}
	res := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(rec)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "ensure %s", kind.Collection)
	}
	return res.RowsAffected > 0, nil
}

// Update overwrites every column of the existing row identified by rec's primary key.
func Update[T any](ctx context.Context, s *Store, rec *T) error {
	kind, err := kindFor[T](s)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(rec).Select("*").Omit(clause.Associations).Updates(rec)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update %s", kind.Collection)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(domain.ErrNotFound, "update %s", kind.Collection)
	}
	return nil
}

// Delete removes the record of T with the given id. Deletes never cascade: the call fails
// with domain.ErrRestricted while the record has children or is referenced by another record.
func Delete[T any](ctx context.Context, s *Store, id int) error {
	rec, err := ByID[T](ctx, s, id, false)
	if err != nil {
		return err
	}
	kind, _ := kindFor[T](s)
	if err := s.restrict(ctx, kind, rec, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(rec).Error; err != nil {
		return errors.Wrapf(err, "delete %s %d", kind.Collection, id)
	}
	return nil
}

// DeleteByCompositeKey removes the record of T matching both key parts.
func DeleteByCompositeKey[T any](ctx context.Context, s *Store, part1, part2 interface{}) error {
	rec, err := ByCompositeKey[T](ctx, s, part1, part2)
	if err != nil {
		return err
	}
	kind, _ := kindFor[T](s)
	if err := s.db.WithContext(ctx).Delete(rec).Error; err != nil {
		return errors.Wrapf(err, "delete %s %v/%v", kind.Collection, part1, part2)
	}
	return nil
}

func (s *Store) restrict(ctx context.Context, kind *Kind, rec interface{}, id int) error {
	for _, field := range kind.Collections() {
		n := s.db.WithContext(ctx).Model(rec).Association(field).Count()
		if n > 0 {
			return errors.Wrapf(domain.ErrRestricted, "%s %d has %d %s", kind.Collection, id, n, field)
		}
	}

	for other, fields := range s.registry.referencing(kind.Type) {
		sch, err := s.schemaOf(other)
		if err != nil {
			return err
		}
		for _, field := range fields {
			rel, ok := sch.Relationships.Relations[field]
			if !ok {
				continue
			}
			for _, ref := range rel.References {
				if ref.OwnPrimaryKey || ref.ForeignKey == nil {
					continue
				}
				var n int64
				err := s.db.WithContext(ctx).Model(other.New()).
					Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: ref.ForeignKey.DBName}, Value: id}).
					Count(&n).Error
				if err != nil {
					return errors.Wrapf(err, "count %s referencing %s", other.Collection, kind.Collection)
				}
				if n > 0 {
					return errors.Wrapf(domain.ErrRestricted, "%s %d is referenced by %d %s", kind.Collection, id, n, other.Collection)
				}
			}
		}
	}
	return nil
}
