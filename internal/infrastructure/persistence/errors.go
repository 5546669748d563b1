package persistence

import (
	"errors"

	"gorm.io/gorm"
)

// isUniqueViolation reports whether err was caused by a unique constraint.
// Relies on the driver error translation enabled on the connection.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
