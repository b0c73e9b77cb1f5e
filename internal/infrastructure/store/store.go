package store

import (
	"context"
	"reflect"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/waste3d/vod-platform/internal/domain"
)

// Store is the generic data-access layer over every registered entity kind.
// It holds no per-request state; the gorm handle is the shared connection pool.
type Store struct {
	db       *gorm.DB
	registry *Registry
}

func New(db *gorm.DB, registry *Registry) *Store {
	return &Store{db: db, registry: registry}
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Registry() *Registry { return s.registry }

// Migrate creates or updates the tables of every registered kind.
func (s *Store) Migrate(ctx context.Context) error {
	models := make([]interface{}, 0, len(s.registry.kinds))
	for _, k := range s.registry.kinds {
		models = append(models, k.New())
	}
	return errors.Wrap(s.db.WithContext(ctx).AutoMigrate(models...), "auto migrate")
}

// SyncSequences moves every postgres id sequence past the highest stored id. Rows
// inserted with explicit keys leave the sequence behind otherwise. Other dialects
// derive the next id from the table and need nothing.
func (s *Store) SyncSequences(ctx context.Context) error {
	if s.db.Dialector.Name() != "postgres" {
		return nil
	}
	for _, k := range s.registry.kinds {
		sch, err := s.schemaOf(k)
		if err != nil {
			return err
		}
		pk := sch.PrioritizedPrimaryField
		if pk == nil || !pk.AutoIncrement {
			continue
		}
		if err := syncSequence(s.db.WithContext(ctx), sch.Table, pk.DBName).Error; err != nil {
			return errors.Wrapf(err, "sync %s id sequence", k.Collection)
		}
	}
	return nil
}

func syncSequence(db *gorm.DB, table, column string) *gorm.DB {
	return db.Exec(
		"SELECT setval(pg_get_serial_sequence(?, ?), COALESCE((SELECT MAX(?) FROM ?), 0) + 1, false)",
		table, column, clause.Column{Name: column}, clause.Table{Name: table},
	)
}

func kindFor[T any](s *Store) (*Kind, error) {
	return s.registry.lookup(reflect.TypeOf((*T)(nil)).Elem())
}

func (s *Store) schemaOf(k *Kind) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(k.New()); err != nil {
		return nil, errors.Wrapf(err, "parse schema of %s", k.Collection)
	}
	return stmt.Schema, nil
}

func notFound(err error, k *Kind, key ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrapf(domain.ErrNotFound, "%s %v", k.Collection, key)
	}
	return errors.Wrapf(err, "load %s %v", k.Collection, key)
}
