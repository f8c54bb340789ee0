package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrStatusConflict = errors.New("order is not in the expected status")
)

// Store is the unit of work for the payment workflow. Repositories returned
// from the tx handed to WithinTransaction share one database transaction.
type Store interface {
	Orders() OrderRepository
	Carts() CartRepository
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Orders() OrderRepository { return NewGormOrderRepository(s.db) }

func (s *gormStore) Carts() CartRepository { return NewGormCartRepository(s.db) }

// WithinTransaction commits when fn returns nil and rolls back otherwise.
func (s *gormStore) WithinTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
