// Package store provides a generic data-access layer over GORM. Each entity
// type gets its own Store instance bound to its schema; services compose
// these with entity-specific queries.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

type Store[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

// Get fetches an entity by primary key.
func (s *Store[T]) Get(ctx context.Context, id any) (*T, error) {
	var entity T
	err := s.db.WithContext(ctx).First(&entity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns a page of entities in stable primary-key order.
func (s *Store[T]) List(ctx context.Context, offset, limit int) ([]T, error) {
	var entities []T
	err := s.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Offset(offset).
		Limit(limit).
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// Create inserts the entity, populating any auto-generated primary key.
func (s *Store[T]) Create(ctx context.Context, entity *T) error {
	return s.db.WithContext(ctx).Create(entity).Error
}

// Update overwrites only the columns present in fields and reloads the
// entity. Uniqueness violations surface as gorm.ErrDuplicatedKey.
func (s *Store[T]) Update(ctx context.Context, entity *T, fields map[string]any) (*T, error) {
	if len(fields) == 0 {
		return entity, nil
	}
	if err := s.db.WithContext(ctx).Model(entity).Updates(fields).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// Delete removes the entity by primary key and returns the removed row, or
// ErrNotFound. The fetch and delete run in one transaction so a concurrent
// delete cannot produce a half-applied result.
func (s *Store[T]) Delete(ctx context.Context, id any) (*T, error) {
	var entity T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entity, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}
