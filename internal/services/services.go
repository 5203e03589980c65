// internal/services/services.go
package services

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// isDuplicateKey reports whether err is a unique-constraint violation. The
// store's constraint enforcement is the single arbiter for uniqueness races;
// the services translate the loss of such a race into a ConflictError rather
// than locking in-process.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
