package store

import (
	"context"
	"errors"
	"fmt"
	"triphub/src/types"

	"gorm.io/gorm"
)

// Store wraps the gorm handle with the queries the API needs. Every
// conditional update is a single UPDATE ... WHERE statement whose
// RowsAffected tells whether the precondition held.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a Store bound to a single database
// transaction. A non-nil error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, types.ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", what, types.ErrConflict)
	}
	return fmt.Errorf("%s: %w", what, err)
}
