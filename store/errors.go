package store

import (
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
)

const (
	// DuplicateKeyCode is the mongodb duplicate key error code
	DuplicateKeyCode = 11000

	pqUniqueViolation = "23505"
)

var (
	ErrRecordNotFound = fmt.Errorf("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write
	ErrDuplicate = fmt.Errorf("duplicated record")
	// ErrStaleState is returned when a conditional write matches no row
	ErrStaleState = fmt.Errorf("record is not in the expected state")
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == pqUniqueViolation
	}

	// sqlite reports constraint failures only through the message
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translate maps driver errors to the store errors
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case gorm.IsRecordNotFoundError(err):
		return ErrRecordNotFound
	case isUniqueViolation(err):
		return ErrDuplicate
	}
	return err
}

// withTx runs fn inside a transaction and rolls back on any error
func (s *AutonomyStore) withTx(fn func(tx *gorm.DB) error) error {
	tx := s.ormDB.Begin()
	if err := tx.Error; err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
